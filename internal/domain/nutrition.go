package domain

import "strings"

// Nutrient identifies one field of a NutrientProfile
type Nutrient string

const (
	NutrientCalories Nutrient = "calories"
	NutrientProtein  Nutrient = "protein"
	NutrientCarbs    Nutrient = "carbs"
	NutrientFat      Nutrient = "fat"
	NutrientFiber    Nutrient = "fiber"
	NutrientSugar    Nutrient = "sugar"
)

// AllNutrients lists every nutrient in display order
var AllNutrients = []Nutrient{
	NutrientCalories,
	NutrientProtein,
	NutrientCarbs,
	NutrientFat,
	NutrientFiber,
	NutrientSugar,
}

// nutrientAliases maps accepted spellings to their canonical nutrient
var nutrientAliases = map[string]Nutrient{
	"calories":      NutrientCalories,
	"calorie":       NutrientCalories,
	"kcal":          NutrientCalories,
	"energy":        NutrientCalories,
	"protein":       NutrientProtein,
	"carbs":         NutrientCarbs,
	"carb":          NutrientCarbs,
	"carbohydrate":  NutrientCarbs,
	"carbohydrates": NutrientCarbs,
	"fat":           NutrientFat,
	"fats":          NutrientFat,
	"totalfat":      NutrientFat,
	"fiber":         NutrientFiber,
	"fibre":         NutrientFiber,
	"sugar":         NutrientSugar,
	"sugars":        NutrientSugar,
}

// ParseNutrient resolves a nutrient name case-insensitively
func ParseNutrient(s string) (Nutrient, bool) {
	n, ok := nutrientAliases[strings.ToLower(strings.TrimSpace(s))]
	return n, ok
}

// Unit returns the display unit for the nutrient
func (n Nutrient) Unit() string {
	if n == NutrientCalories {
		return "kcal"
	}
	return "g"
}

// NutrientProfile holds macronutrient amounts. Calories are kcal, everything else grams.
// Profiles are values; every operation returns a new profile.
type NutrientProfile struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
}

// Get returns the amount of a single nutrient
func (p NutrientProfile) Get(n Nutrient) float64 {
	switch n {
	case NutrientCalories:
		return p.Calories
	case NutrientProtein:
		return p.Protein
	case NutrientCarbs:
		return p.Carbohydrates
	case NutrientFat:
		return p.Fat
	case NutrientFiber:
		return p.Fiber
	case NutrientSugar:
		return p.Sugar
	}
	return 0
}

// Add returns the pointwise sum of two profiles
func (p NutrientProfile) Add(o NutrientProfile) NutrientProfile {
	return NutrientProfile{
		Calories:      p.Calories + o.Calories,
		Protein:       p.Protein + o.Protein,
		Carbohydrates: p.Carbohydrates + o.Carbohydrates,
		Fat:           p.Fat + o.Fat,
		Fiber:         p.Fiber + o.Fiber,
		Sugar:         p.Sugar + o.Sugar,
	}
}

// Sub returns the pointwise difference p - o. The result may be negative.
func (p NutrientProfile) Sub(o NutrientProfile) NutrientProfile {
	return NutrientProfile{
		Calories:      p.Calories - o.Calories,
		Protein:       p.Protein - o.Protein,
		Carbohydrates: p.Carbohydrates - o.Carbohydrates,
		Fat:           p.Fat - o.Fat,
		Fiber:         p.Fiber - o.Fiber,
		Sugar:         p.Sugar - o.Sugar,
	}
}

// Scale multiplies every field by factor, e.g. quantity/100 for per-100g profiles
func (p NutrientProfile) Scale(factor float64) NutrientProfile {
	return NutrientProfile{
		Calories:      p.Calories * factor,
		Protein:       p.Protein * factor,
		Carbohydrates: p.Carbohydrates * factor,
		Fat:           p.Fat * factor,
		Fiber:         p.Fiber * factor,
		Sugar:         p.Sugar * factor,
	}
}

// IsZero reports whether every field is zero
func (p NutrientProfile) IsZero() bool {
	return p == NutrientProfile{}
}

// DerivedCalories estimates energy from macronutrients using 4/4/9 kcal per gram
func DerivedCalories(protein, carbs, fat float64) float64 {
	return 4*protein + 4*carbs + 9*fat
}

// CatalogEntry is one food of the loaded dataset after name normalization
type CatalogEntry struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	GroupID int    `json:"groupId"`
}

// IngredientInfo is the resolver's answer for a single ingredient name
type IngredientInfo struct {
	Query       string          `json:"query"`
	MatchedKey  string          `json:"matchedKey,omitempty"`
	Group       string          `json:"group,omitempty"`
	Exists      bool            `json:"exists"`
	Nutrients   NutrientProfile `json:"nutrients"`
	Suggestions []string        `json:"suggestions,omitempty"`
}
