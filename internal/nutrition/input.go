package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("activity_factor", func(fl validator.FieldLevel) bool {
		return IsActivityFactor(fl.Field().Float())
	})
	return v
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when submitted personal data cannot be used.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid personal data: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// Validate checks presence of the numeric fields and that gender and activity
// factor come from their fixed lists.
func (pd PersonalData) Validate() error {
	err := validate.Struct(pd)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate personal data: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.add(fieldName(fe.Field()), messageFor(fe))
	}
	return out
}

func fieldName(structField string) string {
	switch structField {
	case "ActivityFactor":
		return "activity_factor"
	default:
		return strings.ToLower(structField)
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "activity_factor":
		return "must be one of 1.2, 1.375, 1.55, 1.725, 1.9"
	default:
		return "is invalid"
	}
}

// RawPersonalData carries unparsed form or chat input.
type RawPersonalData struct {
	Weight         string
	Height         string
	Age            string
	Gender         string
	ActivityFactor string
}

// ParsePersonalData converts raw text input, rejecting non-numeric values
// before any other check runs.
func ParsePersonalData(raw RawPersonalData) (PersonalData, error) {
	verr := &ValidationError{}

	weight, ok := parseNumber(raw.Weight)
	if !ok {
		verr.add("weight", "must be a number")
	}
	height, ok := parseNumber(raw.Height)
	if !ok {
		verr.add("height", "must be a number")
	}
	age, err := strconv.Atoi(strings.TrimSpace(raw.Age))
	if err != nil {
		verr.add("age", "must be a whole number")
	}

	factor := ActivityLevels[0].Factor
	if strings.TrimSpace(raw.ActivityFactor) != "" {
		if factor, ok = parseNumber(raw.ActivityFactor); !ok {
			verr.add("activity_factor", "must be a number")
		}
	}

	if len(verr.Fields) > 0 {
		return PersonalData{}, verr
	}

	gender := Gender(strings.ToLower(strings.TrimSpace(raw.Gender)))
	if gender == "" {
		gender = GenderMale
	}

	pd := PersonalData{
		Weight:         weight,
		Height:         height,
		Age:            age,
		Gender:         gender,
		ActivityFactor: factor,
	}
	if err := pd.Validate(); err != nil {
		return PersonalData{}, err
	}
	return pd, nil
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
