package planner

import "diet-planner/internal/spoonacular"

// MealType is one of the three daily meals.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// MealTypes is the order in which meals are planned.
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// Category is the complexSearch "type" filter for the meal.
func (m MealType) Category() string {
	if m == Breakfast {
		return "breakfast"
	}
	return "main course"
}

// DayPlan represents the plan for a single day. A nil meal means no
// candidate recipe was found for it.
type DayPlan struct {
	Breakfast *spoonacular.RecipeSummary `json:"breakfast"`
	Lunch     *spoonacular.RecipeSummary `json:"lunch"`
	Dinner    *spoonacular.RecipeSummary `json:"dinner"`
}

// Meal returns the recipe planned for mt.
func (d DayPlan) Meal(mt MealType) *spoonacular.RecipeSummary {
	switch mt {
	case Breakfast:
		return d.Breakfast
	case Lunch:
		return d.Lunch
	case Dinner:
		return d.Dinner
	}
	return nil
}

func (d *DayPlan) set(mt MealType, r *spoonacular.RecipeSummary) {
	switch mt {
	case Breakfast:
		d.Breakfast = r
	case Lunch:
		d.Lunch = r
	case Dinner:
		d.Dinner = r
	}
}

// WeeklyMealPlan holds exactly DaysPerWeek days; index is the day offset.
type WeeklyMealPlan []DayPlan
