package planner

import (
	"context"
	"time"

	"diet-planner/internal/nutrition"
	"diet-planner/internal/spoonacular"

	"go.uber.org/zap"
)

const (
	// DaysPerWeek is the length of every generated plan.
	DaysPerWeek = 7
	// CandidatesPerMeal is the number of recipes requested per meal type.
	CandidatesPerMeal = 7

	mealShare       = 0.3
	windowTolerance = 0.1
	lunchCeiling    = 0.9
	dinnerFloor     = 1.1

	// nutrientMinimum is sent for every targeted micronutrient. It only asks
	// for the nutrient to be present; it is not a nutritional threshold.
	nutrientMinimum = 1
)

// RecipeSearcher finds candidate recipes for one meal type.
type RecipeSearcher interface {
	Search(ctx context.Context, req spoonacular.SearchRequest) ([]spoonacular.RecipeSummary, error)
}

// Recorder receives per-search and per-plan measurements.
type Recorder interface {
	RecordSearch(mealType string, latency time.Duration, candidates int, err error)
	RecordPlan(emptyMealTypes []string)
}

type nopRecorder struct{}

func (nopRecorder) RecordSearch(string, time.Duration, int, error) {}
func (nopRecorder) RecordPlan([]string)                            {}

// Planner handles the generation of meal plans.
type Planner struct {
	searcher RecipeSearcher
	recorder Recorder
	logger   *zap.Logger
}

// NewPlanner creates a new Planner instance. recorder and logger may be nil.
func NewPlanner(searcher RecipeSearcher, recorder Recorder, logger *zap.Logger) *Planner {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		searcher: searcher,
		recorder: recorder,
		logger:   logger,
	}
}

// CalorieWindow bounds the calories of a single meal.
type CalorieWindow struct {
	Min float64
	Max float64
}

// MealWindow returns the calorie window for mt: 30% of the daily calories
// +/-10%, with the lunch ceiling lowered and the dinner floor raised.
func MealWindow(mt MealType, dailyCalories float64) CalorieWindow {
	share := mealShare * dailyCalories
	w := CalorieWindow{
		Min: share * (1 - windowTolerance),
		Max: share * (1 + windowTolerance),
	}
	switch mt {
	case Lunch:
		w.Max *= lunchCeiling
	case Dinner:
		w.Min *= dinnerFloor
	}
	return w
}

// GenerateMealPlan builds a 7-day plan. Meal types are searched one after
// another so that each search can exclude the recipes already chosen; a
// failed search leaves that meal type empty instead of failing the plan.
func (p *Planner) GenerateMealPlan(ctx context.Context, dailyCalories float64, targets nutrition.NutrientSet) WeeklyMealPlan {
	minimums := make(map[nutrition.Nutrient]float64, len(targets))
	for n := range targets {
		minimums[n] = nutrientMinimum
	}

	candidates := make(map[MealType][]spoonacular.RecipeSummary, len(MealTypes))
	var used []int
	seen := make(map[int]struct{})

	for _, mt := range MealTypes {
		window := MealWindow(mt, dailyCalories)
		recipes := p.searchMeal(ctx, mt, spoonacular.SearchRequest{
			Category:         mt.Category(),
			MinCalories:      window.Min,
			MaxCalories:      window.Max,
			Number:           CandidatesPerMeal,
			NutrientMinimums: minimums,
			ExcludeIDs:       append([]int(nil), used...),
		})
		candidates[mt] = recipes

		for _, r := range recipes {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			used = append(used, r.ID)
		}
	}

	var empty []string
	for _, mt := range MealTypes {
		if len(candidates[mt]) == 0 {
			empty = append(empty, string(mt))
		}
	}
	p.recorder.RecordPlan(empty)

	return BuildWeek(candidates)
}

func (p *Planner) searchMeal(ctx context.Context, mt MealType, req spoonacular.SearchRequest) []spoonacular.RecipeSummary {
	start := time.Now()
	recipes, err := p.searcher.Search(ctx, req)
	p.recorder.RecordSearch(string(mt), time.Since(start), len(recipes), err)

	if err != nil {
		p.logger.Warn("recipe search failed, leaving meal type empty",
			zap.String("meal_type", string(mt)),
			zap.Float64("min_calories", req.MinCalories),
			zap.Float64("max_calories", req.MaxCalories),
			zap.Ints("exclude_ids", req.ExcludeIDs),
			zap.Error(err))
		return nil
	}

	p.logger.Debug("recipe search complete",
		zap.String("meal_type", string(mt)),
		zap.Int("candidates", len(recipes)))
	return recipes
}

// BuildWeek lays the candidates out over DaysPerWeek days, cycling through
// each meal type's list. A meal type without candidates is nil every day.
func BuildWeek(candidates map[MealType][]spoonacular.RecipeSummary) WeeklyMealPlan {
	week := make(WeeklyMealPlan, DaysPerWeek)
	for day := range week {
		for _, mt := range MealTypes {
			list := candidates[mt]
			if len(list) == 0 {
				continue
			}
			r := list[day%len(list)]
			week[day].set(mt, &r)
		}
	}
	return week
}
