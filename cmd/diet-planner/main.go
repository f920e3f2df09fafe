package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"diet-planner/internal/app"
	"diet-planner/internal/config"
	"diet-planner/internal/logging"
	"diet-planner/internal/metrics"
	"diet-planner/internal/nutrition"
	"diet-planner/internal/planner"
	"diet-planner/internal/spoonacular"
	"diet-planner/internal/web"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	metricsStore := metrics.NewStore("diet")
	client := spoonacular.NewClient(cfg)
	mealPlanner := planner.NewPlanner(client, metricsStore, logger)
	application := app.NewApp(client, mealPlanner, metricsStore, logger)

	ctx := context.Background()

	switch os.Args[1] {
	case "plan":
		if err := runPlan(ctx, application, os.Args[2:]); err != nil {
			logger.Fatal("plan failed", zap.Error(err))
		}
	case "recipe":
		if err := runRecipe(ctx, application, os.Args[2:]); err != nil {
			logger.Fatal("recipe lookup failed", zap.Error(err))
		}
	case "serve":
		serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
		addr := serveCmd.String("addr", ":"+cfg.Port, "Listen address")
		serveCmd.Parse(os.Args[2:])

		if err := serve(application, metricsStore, logger, *addr); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runPlan(ctx context.Context, application *app.App, args []string) error {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	weight := planCmd.String("weight", "", "Body weight in kg")
	height := planCmd.String("height", "", "Height in cm")
	age := planCmd.String("age", "", "Age in years")
	gender := planCmd.String("gender", "male", "male or female")
	activity := planCmd.String("activity", "1.2", "Activity factor: 1.2, 1.375, 1.55, 1.725 or 1.9")
	symptoms := planCmd.String("symptoms", "", "Comma separated symptoms, e.g. fatigue,hairLoss")
	asJSON := planCmd.Bool("json", false, "Print the result as JSON")
	planCmd.Parse(args)

	pd, err := nutrition.ParsePersonalData(nutrition.RawPersonalData{
		Weight:         *weight,
		Height:         *height,
		Age:            *age,
		Gender:         *gender,
		ActivityFactor: *activity,
	})
	if err != nil {
		return err
	}
	flags, err := nutrition.ParseSymptoms(strings.Split(*symptoms, ","))
	if err != nil {
		return err
	}

	res := application.Plan(ctx, pd, flags)
	if res.IsFailure() {
		return res.Err
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Value)
	}
	printPlan(res.Value)
	return nil
}

func printPlan(r *app.PlanResult) {
	fmt.Println("Daily Nutrient Requirements")
	fmt.Printf("  BMR: %.0f kcal\n", r.BMR)
	fmt.Printf("  Calories: %.0f\n", r.Budget.Calories)
	fmt.Printf("  Protein: %.1f g\n", r.Budget.Protein)
	fmt.Printf("  Carbohydrates: %.1f g\n", r.Budget.Carbs)
	fmt.Printf("  Fats: %.1f g\n", r.Budget.Fat)
	if len(r.Micronutrients) > 0 {
		fmt.Println("\nMicronutrients (FDA recommended)")
		for _, m := range r.Micronutrients {
			fmt.Printf("  %s: %v %s\n", m.Nutrient, m.Amount, m.Unit())
		}
	}

	fmt.Println("\nWeekly Meal Plan")
	for day, dp := range r.Plan {
		fmt.Printf("\nDay %d\n", day+1)
		for _, mt := range planner.MealTypes {
			meal := "No recipe found"
			if rs := dp.Meal(mt); rs != nil {
				meal = fmt.Sprintf("%s [%d]", rs.Title, rs.ID)
			}
			fmt.Printf("  %-9s %s\n", string(mt)+":", meal)
		}
	}
}

func runRecipe(ctx context.Context, application *app.App, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: diet-planner recipe <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid recipe id %q: %w", args[0], err)
	}

	res := application.Recipe(ctx, id)
	if res.IsFailure() {
		return res.Err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Value)
}

func serve(application *app.App, metricsStore *metrics.Store, logger *zap.Logger, addr string) error {
	server, err := web.NewServer(application, metricsStore.Handler(), logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	case <-quit:
	}
	logger.Info("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server exiting")
	return nil
}

func printUsage() {
	fmt.Println("Usage: diet-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan      Generate a weekly meal plan (-weight -height -age -gender -activity -symptoms [-json])")
	fmt.Println("  recipe    Print a recipe by id")
	fmt.Println("  serve     Start the web front end (-addr)")
}
