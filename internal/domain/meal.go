package domain

import (
	"fmt"
	"time"
)

// Meal is a logged meal as handed over by the meal-logging side.
// Ingredients and Quantities are parallel slices; quantities are grams.
type Meal struct {
	ProfileID   string          `json:"profileId,omitempty"`
	Date        time.Time       `json:"date"`
	Ingredients []string        `json:"ingredients"`
	Quantities  []float64       `json:"quantities"`
	Nutrients   NutrientProfile `json:"nutrients"`
}

// Validate checks the parallel-slice invariant
func (m *Meal) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: meal is nil", ErrInvalidMeal)
	}
	if len(m.Ingredients) != len(m.Quantities) {
		return fmt.Errorf("%w: %d ingredients but %d quantities",
			ErrInvalidMeal, len(m.Ingredients), len(m.Quantities))
	}
	return nil
}

// Clone returns a deep copy of the meal
func (m *Meal) Clone() *Meal {
	if m == nil {
		return nil
	}
	clone := *m
	clone.Ingredients = append([]string(nil), m.Ingredients...)
	clone.Quantities = append([]float64(nil), m.Quantities...)
	return &clone
}

// NutrientDelta is the signed change a swap causes, one field per nutrient
type NutrientDelta struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
}

// NewNutrientDelta builds the delta going from before to after
func NewNutrientDelta(before, after NutrientProfile) NutrientDelta {
	d := after.Sub(before)
	return NutrientDelta(d)
}

// AsMap returns nutrient name -> signed change, suitable for charting
func (d NutrientDelta) AsMap() map[string]float64 {
	return map[string]float64{
		string(NutrientCalories): d.Calories,
		string(NutrientProtein):  d.Protein,
		string(NutrientCarbs):    d.Carbohydrates,
		string(NutrientFat):      d.Fat,
		string(NutrientFiber):    d.Fiber,
		string(NutrientSugar):    d.Sugar,
	}
}

// SwapRecord is an applied swap kept in history
type SwapRecord struct {
	ID              string        `json:"id"`
	ProfileID       string        `json:"profileId,omitempty"`
	OriginalFood    string        `json:"originalFood"`
	ReplacementFood string        `json:"replacementFood"`
	GoalTarget      string        `json:"goalTarget"`
	ImpactScore     float64       `json:"impactScore"`
	Delta           NutrientDelta `json:"delta"`
	AppliedAt       time.Time     `json:"appliedAt"`
}
