package nutrition

// Gender selects the Mifflin-St Jeor constant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// PersonalData is the body-metrics snapshot submitted by the user.
type PersonalData struct {
	Weight         float64 `json:"weight" validate:"required"` // kg
	Height         float64 `json:"height" validate:"required"` // cm
	Age            int     `json:"age" validate:"required"`
	Gender         Gender  `json:"gender" validate:"required,oneof=male female"`
	ActivityFactor float64 `json:"activity_factor" validate:"required,activity_factor"`
}

// ComputeBMR returns the basal metabolic rate in kcal/day using the
// Mifflin-St Jeor equation. Inputs are not validated.
func ComputeBMR(pd PersonalData) float64 {
	base := 10*pd.Weight + 6.25*pd.Height - 5*float64(pd.Age)
	if pd.Gender == GenderMale {
		return base + 5
	}
	return base - 161
}

// DailyCalories is the total daily energy expenditure: BMR scaled by the
// activity factor.
func DailyCalories(pd PersonalData) float64 {
	return ComputeBMR(pd) * pd.ActivityFactor
}

// ActivityLevel is one selectable exercise level.
type ActivityLevel struct {
	Factor float64
	Label  string
}

// ActivityLevels lists the accepted activity factors in ascending order.
var ActivityLevels = []ActivityLevel{
	{Factor: 1.2, Label: "Sedentary"},
	{Factor: 1.375, Label: "Lightly Active"},
	{Factor: 1.55, Label: "Moderately Active"},
	{Factor: 1.725, Label: "Very Active"},
	{Factor: 1.9, Label: "Extra Active"},
}

// IsActivityFactor reports whether f is one of ActivityLevels.
func IsActivityFactor(f float64) bool {
	for _, lvl := range ActivityLevels {
		if lvl.Factor == f {
			return true
		}
	}
	return false
}
