package nutrition

import (
	"fmt"
	"sort"
	"strings"
)

// Symptom identifies a deficiency symptom from the checklist.
type Symptom string

const (
	SymptomFatigue            Symptom = "fatigue"
	SymptomHairLoss           Symptom = "hairLoss"
	SymptomWeakNails          Symptom = "weakNails"
	SymptomDrySkin            Symptom = "drySkin"
	SymptomPoorNightVision    Symptom = "poorNightVision"
	SymptomFrequentInfections Symptom = "frequentInfections"
	SymptomMuscleCramps       Symptom = "muscleCramps"
	SymptomBrittleHair        Symptom = "brittleHair"
	SymptomBleedingGums       Symptom = "bleedingGums"
	SymptomSlowWoundHealing   Symptom = "slowWoundHealing"
)

// Symptoms is the checklist in display order.
var Symptoms = []Symptom{
	SymptomFatigue,
	SymptomHairLoss,
	SymptomWeakNails,
	SymptomDrySkin,
	SymptomPoorNightVision,
	SymptomFrequentInfections,
	SymptomMuscleCramps,
	SymptomBrittleHair,
	SymptomBleedingGums,
	SymptomSlowWoundHealing,
}

var symptomLabels = map[Symptom]string{
	SymptomFatigue:            "Fatigue",
	SymptomHairLoss:           "Hair loss",
	SymptomWeakNails:          "Weak nails",
	SymptomDrySkin:            "Dry skin",
	SymptomPoorNightVision:    "Poor night vision",
	SymptomFrequentInfections: "Frequent infections",
	SymptomMuscleCramps:       "Muscle cramps",
	SymptomBrittleHair:        "Brittle hair",
	SymptomBleedingGums:       "Bleeding gums",
	SymptomSlowWoundHealing:   "Slow wound healing",
}

// Label returns a human readable name.
func (s Symptom) Label() string {
	if l, ok := symptomLabels[s]; ok {
		return l
	}
	return string(s)
}

var symptomToMicronutrients = map[Symptom][]Nutrient{
	SymptomFatigue:            {Iron, VitaminB12},
	SymptomHairLoss:           {Biotin, Zinc},
	SymptomWeakNails:          {Zinc, Iron},
	SymptomDrySkin:            {VitaminA, Omega3},
	SymptomPoorNightVision:    {VitaminA},
	SymptomFrequentInfections: {VitaminC, Zinc},
	SymptomMuscleCramps:       {Magnesium, Potassium},
	SymptomBrittleHair:        {Biotin},
	SymptomBleedingGums:       {VitaminC},
	SymptomSlowWoundHealing:   {Zinc, VitaminC},
}

// SymptomFlags records which symptoms the user reported.
type SymptomFlags map[Symptom]bool

// ParseSymptoms builds flags from symptom identifiers. Matching is case
// insensitive; blank entries are skipped.
func ParseSymptoms(names []string) (SymptomFlags, error) {
	flags := make(SymptomFlags, len(Symptoms))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s, ok := lookupSymptom(name)
		if !ok {
			return nil, fmt.Errorf("unknown symptom %q", name)
		}
		flags[s] = true
	}
	return flags, nil
}

func lookupSymptom(name string) (Symptom, bool) {
	for _, s := range Symptoms {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

// Reported returns the flagged symptoms in checklist order.
func (f SymptomFlags) Reported() []Symptom {
	var out []Symptom
	for _, s := range Symptoms {
		if f[s] {
			out = append(out, s)
		}
	}
	return out
}

// NutrientSet is an unordered, duplicate-free set of micronutrients.
type NutrientSet map[Nutrient]struct{}

// NewNutrientSet builds a set from the given nutrients.
func NewNutrientSet(nutrients ...Nutrient) NutrientSet {
	set := make(NutrientSet, len(nutrients))
	for _, n := range nutrients {
		set[n] = struct{}{}
	}
	return set
}

// Has reports set membership.
func (s NutrientSet) Has(n Nutrient) bool {
	_, ok := s[n]
	return ok
}

// Sorted returns the members in lexical order.
func (s NutrientSet) Sorted() []Nutrient {
	out := make([]Nutrient, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ResolveMicronutrients returns the union of the micronutrients associated
// with every flagged symptom.
func ResolveMicronutrients(flags SymptomFlags) NutrientSet {
	targets := make(NutrientSet)
	for symptom, flagged := range flags {
		if !flagged {
			continue
		}
		for _, n := range symptomToMicronutrients[symptom] {
			targets[n] = struct{}{}
		}
	}
	return targets
}
