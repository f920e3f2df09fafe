package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"diet-planner/internal/nutrition"
)

const usageText = "🥗 *Diet Planner*\n\n" +
	"`/plan <weight> <height> <age> <gender> <activity> [symptoms]`\n" +
	"Weight in kg, height in cm, gender male or female, activity one of " +
	"1.2, 1.375, 1.55, 1.725, 1.9. Symptoms are comma separated, e.g. `fatigue,hairLoss`.\n\n" +
	"`/recipe <id>` shows a recipe from your plan."

var (
	errPlanUsage   = errors.New("usage: /plan <weight> <height> <age> <gender> <activity> [symptom,symptom]")
	errRecipeUsage = errors.New("usage: /recipe <id>")
)

// splitCommand separates "/cmd@bot rest" into "/cmd" and "rest".
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	command, args, _ := strings.Cut(text, " ")
	if i := strings.Index(command, "@"); i >= 0 {
		command = command[:i]
	}
	return strings.ToLower(command), strings.TrimSpace(args)
}

func parsePlanArgs(args string) (nutrition.PersonalData, nutrition.SymptomFlags, error) {
	fields := strings.Fields(args)
	if len(fields) < 5 {
		return nutrition.PersonalData{}, nil, errPlanUsage
	}

	pd, err := nutrition.ParsePersonalData(nutrition.RawPersonalData{
		Weight:         fields[0],
		Height:         fields[1],
		Age:            fields[2],
		Gender:         fields[3],
		ActivityFactor: fields[4],
	})
	if err != nil {
		return nutrition.PersonalData{}, nil, err
	}

	var names []string
	for _, f := range fields[5:] {
		names = append(names, strings.Split(f, ",")...)
	}
	flags, err := nutrition.ParseSymptoms(names)
	if err != nil {
		return nutrition.PersonalData{}, nil, err
	}
	return pd, flags, nil
}

func parseRecipeArgs(args string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || id <= 0 {
		return 0, errRecipeUsage
	}
	return id, nil
}

func invalidInputText(err error) string {
	var verr *nutrition.ValidationError
	if errors.As(err, &verr) {
		var sb strings.Builder
		sb.WriteString("⚠️ *Invalid input*\n")
		for _, f := range verr.Fields {
			fmt.Fprintf(&sb, "• %s %s\n", escape(f.Field), escape(f.Message))
		}
		return sb.String()
	}
	return fmt.Sprintf("⚠️ %s", escape(err.Error()))
}
