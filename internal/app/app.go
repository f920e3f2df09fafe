package app

import (
	"context"
	"errors"
	"fmt"

	"diet-planner/internal/metrics"
	"diet-planner/internal/nutrition"
	"diet-planner/internal/planner"
	"diet-planner/internal/shared"
	"diet-planner/internal/spoonacular"

	"go.uber.org/zap"
)

// RecipeFetcher loads a single recipe by id.
type RecipeFetcher interface {
	FetchByID(ctx context.Context, id int) (*spoonacular.Recipe, error)
}

// FetchRecorder counts recipe lookups by outcome.
type FetchRecorder interface {
	RecordRecipeFetch(outcome string)
}

// App holds the application's dependencies.
type App struct {
	recipes  RecipeFetcher
	planner  *planner.Planner
	recorder FetchRecorder
	logger   *zap.Logger
}

// NewApp creates and initializes a new App instance.
func NewApp(
	recipes RecipeFetcher,
	mealPlanner *planner.Planner,
	recorder FetchRecorder,
	logger *zap.Logger,
) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		recipes:  recipes,
		planner:  mealPlanner,
		recorder: recorder,
		logger:   logger,
	}
}

// PlanResult is everything a front end shows after a submission.
type PlanResult struct {
	Personal       nutrition.PersonalData          `json:"personal"`
	BMR            float64                         `json:"bmr"`
	Budget         nutrition.NutrientBudget        `json:"budget"`
	Symptoms       []nutrition.Symptom             `json:"symptoms"`
	Micronutrients []nutrition.MicronutrientTarget `json:"micronutrients"`
	Plan           planner.WeeklyMealPlan          `json:"plan"`
}

// BuildPlan derives the nutrient targets for the user and generates the
// weekly plan. It only fails when the personal data is invalid.
func (a *App) BuildPlan(ctx context.Context, pd nutrition.PersonalData, flags nutrition.SymptomFlags) (*PlanResult, error) {
	if err := pd.Validate(); err != nil {
		return nil, err
	}

	bmr := nutrition.ComputeBMR(pd)
	daily := bmr * pd.ActivityFactor
	targets := nutrition.ResolveMicronutrients(flags)

	a.logger.Info("generating meal plan",
		zap.Float64("daily_calories", daily),
		zap.Int("target_nutrients", len(targets)))

	return &PlanResult{
		Personal:       pd,
		BMR:            bmr,
		Budget:         nutrition.NewBudget(daily),
		Symptoms:       flags.Reported(),
		Micronutrients: nutrition.Targets(targets),
		Plan:           a.planner.GenerateMealPlan(ctx, daily, targets),
	}, nil
}

// Plan is BuildPlan reported as a Result.
func (a *App) Plan(ctx context.Context, pd nutrition.PersonalData, flags nutrition.SymptomFlags) shared.Result[*PlanResult] {
	res, err := a.BuildPlan(ctx, pd, flags)
	if err != nil {
		var verr *nutrition.ValidationError
		if errors.As(err, &verr) {
			return shared.Failure[*PlanResult](shared.FailureInvalidInput, err)
		}
		return shared.Failure[*PlanResult](shared.FailureRequestFailed, err)
	}
	return shared.Success(res)
}

// Recipe fetches a recipe and classifies the outcome so that a missing
// recipe can be told apart from every other failure.
func (a *App) Recipe(ctx context.Context, id int) shared.Result[*spoonacular.Recipe] {
	recipe, err := a.recipes.FetchByID(ctx, id)
	switch {
	case err == nil:
		a.record(metrics.OutcomeSuccess)
		return shared.Success(recipe)
	case errors.Is(err, spoonacular.ErrNotFound):
		a.record(metrics.OutcomeNotFound)
		return shared.Failure[*spoonacular.Recipe](shared.FailureNotFound, err)
	default:
		a.record(metrics.OutcomeRequestFailed)
		a.logger.Error("failed to fetch recipe", zap.Int("recipe_id", id), zap.Error(err))
		return shared.Failure[*spoonacular.Recipe](shared.FailureRequestFailed, fmt.Errorf("failed to fetch recipe %d: %w", id, err))
	}
}

func (a *App) record(outcome string) {
	if a.recorder != nil {
		a.recorder.RecordRecipeFetch(outcome)
	}
}
