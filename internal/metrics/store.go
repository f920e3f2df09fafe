package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess       = "success"
	OutcomeFailure       = "failure"
	OutcomeNotFound      = "not_found"
	OutcomeRequestFailed = "request_failed"
)

// Store holds the Prometheus collectors for the planner and its adapters.
// Each Store owns its own registry so tests can build as many as they need.
type Store struct {
	registry *prometheus.Registry

	searchRequests   *prometheus.CounterVec
	searchDuration   *prometheus.HistogramVec
	searchCandidates *prometheus.HistogramVec
	recipeFetches    *prometheus.CounterVec
	plansGenerated   prometheus.Counter
	emptyMealSlots   *prometheus.CounterVec
}

// NewStore creates a Store whose metrics are prefixed with namespace.
func NewStore(namespace string) *Store {
	s := &Store{
		registry: prometheus.NewRegistry(),
		searchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_search_requests_total",
			Help:      "Recipe search calls by meal type and outcome",
		}, []string{"meal_type", "outcome"}),
		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recipe_search_duration_seconds",
			Help:      "Recipe search latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"meal_type"}),
		searchCandidates: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recipe_search_candidates",
			Help:      "Candidates returned per successful search",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 7},
		}, []string{"meal_type"}),
		recipeFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_detail_requests_total",
			Help:      "Recipe detail lookups by outcome",
		}, []string{"outcome"}),
		plansGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meal_plans_generated_total",
			Help:      "Weekly meal plans generated",
		}),
		emptyMealSlots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meal_plan_empty_meal_types_total",
			Help:      "Generated plans in which a meal type had no candidates",
		}, []string{"meal_type"}),
	}

	s.registry.MustRegister(
		s.searchRequests,
		s.searchDuration,
		s.searchCandidates,
		s.recipeFetches,
		s.plansGenerated,
		s.emptyMealSlots,
		collectors.NewGoCollector(),
	)
	return s
}

// RecordSearch records one recipe search call.
func (s *Store) RecordSearch(mealType string, latency time.Duration, candidates int, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	s.searchRequests.WithLabelValues(mealType, outcome).Inc()
	s.searchDuration.WithLabelValues(mealType).Observe(latency.Seconds())
	if err == nil {
		s.searchCandidates.WithLabelValues(mealType).Observe(float64(candidates))
	}
}

// RecordPlan records a finished generation run and the meal types left empty.
func (s *Store) RecordPlan(emptyMealTypes []string) {
	s.plansGenerated.Inc()
	for _, mt := range emptyMealTypes {
		s.emptyMealSlots.WithLabelValues(mt).Inc()
	}
}

// RecordRecipeFetch records a detail lookup outcome.
func (s *Store) RecordRecipeFetch(outcome string) {
	s.recipeFetches.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (s *Store) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
