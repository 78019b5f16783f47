package dataset

import "github.com/nutriswap/backend/internal/domain"

// Nutrient codes used by the amounts table
const (
	NutrientCodeEnergy       = 208 // Calories (kcal)
	NutrientCodeProtein      = 203 // Protein (g)
	NutrientCodeTotalFat     = 204 // Total Fat (g)
	NutrientCodeCarbohydrate = 205 // Carbohydrates (g)
	NutrientCodeSugar        = 269 // Total sugars (g)
	NutrientCodeFiber        = 291 // Dietary fiber (g)
)

// MapToProfile converts a food's code->value map into a NutrientProfile.
// When no energy value is recorded, calories are derived from the macros.
func MapToProfile(codes map[int]float64) domain.NutrientProfile {
	profile := domain.NutrientProfile{}

	for code, value := range codes {
		switch code {
		case NutrientCodeEnergy:
			profile.Calories = value
		case NutrientCodeProtein:
			profile.Protein = value
		case NutrientCodeCarbohydrate:
			profile.Carbohydrates = value
		case NutrientCodeTotalFat:
			profile.Fat = value
		case NutrientCodeFiber:
			profile.Fiber = value
		case NutrientCodeSugar:
			profile.Sugar = value
		}
	}

	if _, ok := codes[NutrientCodeEnergy]; !ok {
		profile.Calories = domain.DerivedCalories(profile.Protein, profile.Carbohydrates, profile.Fat)
	}

	return profile
}
