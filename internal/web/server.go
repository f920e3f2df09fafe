package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"diet-planner/internal/app"
	"diet-planner/internal/metrics"
	"diet-planner/internal/nutrition"
	"diet-planner/internal/shared"
	"diet-planner/internal/spoonacular"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Service is what the handlers need from the application.
type Service interface {
	Plan(ctx context.Context, pd nutrition.PersonalData, flags nutrition.SymptomFlags) shared.Result[*app.PlanResult]
	Recipe(ctx context.Context, id int) shared.Result[*spoonacular.Recipe]
}

// Server renders the planner pages and the JSON API.
type Server struct {
	service   Service
	metrics   http.Handler
	logger    *zap.Logger
	templates map[string]*template.Template
}

// NewServer parses the embedded templates. metricsHandler may be nil, in
// which case /metrics is not mounted.
func NewServer(service Service, metricsHandler http.Handler, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	templates, err := parsePageTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return &Server{
		service:   service,
		metrics:   metricsHandler,
		logger:    logger,
		templates: templates,
	}, nil
}

// Routes configures all routes and middleware.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(s.logger))

	router.NotFound(s.notFound)

	router.Get("/", s.showForm)
	router.Post("/plan", s.submitPlan)
	router.Get("/recipes/{recipeID}", s.showRecipe)

	router.Get("/health", s.health)
	if s.metrics != nil {
		router.Method(http.MethodGet, "/metrics", s.metrics)
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		r.Post("/plan", s.apiPlan)
		r.Get("/recipes/{recipeID}", s.apiRecipe)
	})

	return router
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, metrics.GetSysHealth())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
