package spoonacular

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RecipeSummary is the slice of a search hit the planner keeps.
type RecipeSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// SearchResponse is the top-level structure of a complexSearch response.
type SearchResponse struct {
	Results      []RecipeSummary `json:"results"`
	Offset       int             `json:"offset"`
	Number       int             `json:"number"`
	TotalResults int             `json:"totalResults"`
}

// Ingredient is one entry of extendedIngredients.
type Ingredient struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original"`
}

// Nutrient is one entry of nutrition.nutrients.
type Nutrient struct {
	Name                string  `json:"name"`
	Amount              float64 `json:"amount"`
	Unit                string  `json:"unit"`
	PercentOfDailyNeeds float64 `json:"percentOfDailyNeeds"`
}

// Nutrition wraps the per-serving nutrient list.
type Nutrition struct {
	Nutrients []Nutrient `json:"nutrients"`
}

// StepItem is an ingredient or piece of equipment referenced by a step.
type StepItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// InstructionStep is a numbered cooking step.
type InstructionStep struct {
	Number      int        `json:"number"`
	Step        string     `json:"step"`
	Ingredients []StepItem `json:"ingredients"`
	Equipment   []StepItem `json:"equipment"`
}

// Instruction is a named group of steps.
type Instruction struct {
	Name  string            `json:"name"`
	Steps []InstructionStep `json:"steps"`
}

// Recipe is the full recipe document returned by the information endpoint.
type Recipe struct {
	ID                   int           `json:"id"`
	Title                string        `json:"title"`
	Image                string        `json:"image"`
	Servings             int           `json:"servings"`
	ReadyInMinutes       int           `json:"readyInMinutes"`
	Summary              string        `json:"summary"`
	ExtendedIngredients  []Ingredient  `json:"extendedIngredients"`
	Nutrition            Nutrition     `json:"nutrition"`
	AnalyzedInstructions []Instruction `json:"analyzedInstructions"`
	Vegetarian           bool          `json:"vegetarian"`
	Vegan                bool          `json:"vegan"`
	GlutenFree           bool          `json:"glutenFree"`
	DairyFree            bool          `json:"dairyFree"`
	VeryHealthy          bool          `json:"veryHealthy"`
	HealthScore          float64       `json:"healthScore"`
	SpoonacularScore     float64       `json:"spoonacularScore"`
}

// normalize replaces absent lists with empty ones so callers never see nil.
func (r *Recipe) normalize() {
	if r.ExtendedIngredients == nil {
		r.ExtendedIngredients = []Ingredient{}
	}
	if r.Nutrition.Nutrients == nil {
		r.Nutrition.Nutrients = []Nutrient{}
	}
	if r.AnalyzedInstructions == nil {
		r.AnalyzedInstructions = []Instruction{}
	}
	for i := range r.AnalyzedInstructions {
		ins := &r.AnalyzedInstructions[i]
		if ins.Steps == nil {
			ins.Steps = []InstructionStep{}
		}
		for j := range ins.Steps {
			if ins.Steps[j].Ingredients == nil {
				ins.Steps[j].Ingredients = []StepItem{}
			}
			if ins.Steps[j].Equipment == nil {
				ins.Steps[j].Equipment = []StepItem{}
			}
		}
	}
}

// SummaryText flattens the rich-text summary into plain text.
func (r *Recipe) SummaryText() string {
	if r.Summary == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.Summary))
	if err != nil {
		return r.Summary
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Names joins the item names with ", ".
func Names(items []StepItem) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return strings.Join(names, ", ")
}
