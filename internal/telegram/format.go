package telegram

import (
	"fmt"
	"math"
	"strings"

	"diet-planner/internal/app"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/shared"
	"diet-planner/internal/spoonacular"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// formatPlanMarkdownParts returns the nutrient summary and the weekly plan.
// The plan part is empty unless res succeeded.
func formatPlanMarkdownParts(res shared.Result[*app.PlanResult]) (string, string) {
	switch {
	case res.IsPending():
		return "🧑‍🍳 *Planning...* \n(Searching recipes for your week)", ""
	case res.IsFailure():
		if res.Kind == shared.FailureInvalidInput {
			return invalidInputText(res.Err), ""
		}
		return "❌ Unable to generate a meal plan. Please try again later.", ""
	}

	r := res.Value

	var sb strings.Builder
	sb.WriteString("📊 *Daily Nutrient Requirements*\n\n")
	fmt.Fprintf(&sb, "Calories: %.0f\n\n", math.Round(r.Budget.Calories))
	sb.WriteString("*Macronutrients*\n")
	fmt.Fprintf(&sb, "• Protein: %.1f g\n", r.Budget.Protein)
	fmt.Fprintf(&sb, "• Carbohydrates: %.1f g\n", r.Budget.Carbs)
	fmt.Fprintf(&sb, "• Fats: %.1f g\n", r.Budget.Fat)
	if len(r.Micronutrients) > 0 {
		sb.WriteString("\n*Micronutrients (FDA recommended)*\n")
		for _, m := range r.Micronutrients {
			fmt.Fprintf(&sb, "• %s: %v %s\n", escape(string(m.Nutrient)), m.Amount, m.Unit())
		}
	}

	var pb strings.Builder
	pb.WriteString("📅 *Weekly Meal Plan*\n\n")
	for day, dp := range r.Plan {
		fmt.Fprintf(&pb, "*Day %d*\n", day+1)
		for _, mt := range planner.MealTypes {
			fmt.Fprintf(&pb, "%s: %s\n", mealLabel(mt), mealText(dp.Meal(mt)))
		}
		pb.WriteString("\n")
	}
	pb.WriteString("_Send /recipe <id> for details._")

	return sb.String(), pb.String()
}

func mealLabel(mt planner.MealType) string {
	s := string(mt)
	return strings.ToUpper(s[:1]) + s[1:]
}

func mealText(r *spoonacular.RecipeSummary) string {
	if r == nil {
		return "No recipe found"
	}
	return fmt.Sprintf("%s (`%d`)", escape(r.Title), r.ID)
}

func formatRecipeMarkdown(res shared.Result[*spoonacular.Recipe]) string {
	if res.IsFailure() {
		if res.Kind == shared.FailureNotFound {
			return "🔍 Recipe not found."
		}
		return "❌ Unable to load the recipe. Please try again later."
	}
	r := res.Value

	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽 *%s*\n\n", escape(r.Title))
	fmt.Fprintf(&sb, "Servings: %d\n", r.Servings)
	fmt.Fprintf(&sb, "Ready in: %d minutes\n", r.ReadyInMinutes)
	fmt.Fprintf(&sb, "Health Score: %v/100\n", r.HealthScore)
	fmt.Fprintf(&sb, "Spoonacular Score: %.0f%%\n\n", math.Round(r.SpoonacularScore))

	fmt.Fprintf(&sb, "Vegetarian: %s, Vegan: %s, Gluten Free: %s, Dairy Free: %s\n\n",
		yesNo(r.Vegetarian), yesNo(r.Vegan), yesNo(r.GlutenFree), yesNo(r.DairyFree))

	if len(r.ExtendedIngredients) > 0 {
		sb.WriteString("*Ingredients*\n")
		for _, ing := range r.ExtendedIngredients {
			fmt.Fprintf(&sb, "• %s\n", escape(ing.Original))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("*Instructions*\n")
	steps := 0
	for _, ins := range r.AnalyzedInstructions {
		for _, st := range ins.Steps {
			fmt.Fprintf(&sb, "%d. %s\n", st.Number, escape(st.Step))
			steps++
		}
	}
	if steps == 0 {
		sb.WriteString("No instructions available.\n")
	}
	return sb.String()
}

func formatHealthMarkdown() string {
	health := metrics.GetSysHealth()

	var sb strings.Builder
	sb.WriteString("🧠 *System Health*\n")
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "• GC cycles: %d\n", health.NumGC)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Uptime: %s\n", health.Uptime)
	return sb.String()
}
