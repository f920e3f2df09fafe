package nutrition

import "strings"

// Nutrient identifies a micronutrient the recipe search can filter on.
type Nutrient string

const (
	Iron       Nutrient = "iron"
	VitaminB12 Nutrient = "vitaminB12"
	Biotin     Nutrient = "biotin"
	Zinc       Nutrient = "zinc"
	VitaminA   Nutrient = "vitaminA"
	Omega3     Nutrient = "omega3"
	VitaminC   Nutrient = "vitaminC"
	Magnesium  Nutrient = "magnesium"
	Potassium  Nutrient = "potassium"
)

// FDA daily values. The units differ per nutrient and are not tracked here.
var dailyValues = map[Nutrient]float64{
	Iron:       18,
	VitaminB12: 2.4,
	Biotin:     30,
	Zinc:       11,
	VitaminA:   900,
	Omega3:     1600,
	VitaminC:   90,
	Magnesium:  420,
	Potassium:  4700,
}

// DailyValue returns the recommended daily amount, or 0 for an unknown nutrient.
func DailyValue(n Nutrient) float64 {
	return dailyValues[n]
}

// SearchParam is the name of the minimum-amount filter for n, e.g. "minIron".
func (n Nutrient) SearchParam() string {
	if n == "" {
		return ""
	}
	s := string(n)
	return "min" + strings.ToUpper(s[:1]) + s[1:]
}

// MicronutrientTarget pairs a nutrient with its daily value.
type MicronutrientTarget struct {
	Nutrient Nutrient `json:"name"`
	Amount   float64  `json:"amount"`
}

// Unit is a display heuristic only: amounts of 1000 or more read as
// milligrams, anything else positive as micrograms.
func (t MicronutrientTarget) Unit() string {
	switch {
	case t.Amount <= 0:
		return ""
	case t.Amount >= 1000:
		return "mg"
	default:
		return "µg"
	}
}

// Targets expands a nutrient set into display targets, ordered by name.
func Targets(set NutrientSet) []MicronutrientTarget {
	sorted := set.Sorted()
	out := make([]MicronutrientTarget, 0, len(sorted))
	for _, n := range sorted {
		out = append(out, MicronutrientTarget{Nutrient: n, Amount: DailyValue(n)})
	}
	return out
}

// NutrientBudget is the daily calorie target and its macronutrient split.
type NutrientBudget struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NewBudget splits calories 20/50/30 into protein, carbohydrate and fat grams.
func NewBudget(calories float64) NutrientBudget {
	return NutrientBudget{
		Calories: calories,
		Protein:  calories * 0.20 / 4,
		Carbs:    calories * 0.50 / 4,
		Fat:      calories * 0.30 / 9,
	}
}
