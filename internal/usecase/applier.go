package usecase

import (
	"fmt"
	"strings"

	"github.com/nutriswap/backend/internal/domain"
)

// SwapApplier rewrites meals with a chosen swap. It never modifies its inputs.
type SwapApplier struct{}

// NewSwapApplier creates a swap applier
func NewSwapApplier() *SwapApplier {
	return &SwapApplier{}
}

// Apply returns a copy of meal with the first ingredient containing the
// candidate's original food replaced. The new total is the old total plus
// (replacement - original); other ingredients are not re-resolved.
func (a *SwapApplier) Apply(meal *domain.Meal, candidate *domain.SwapCandidate) (*domain.Meal, domain.NutrientDelta, error) {
	if err := meal.Validate(); err != nil {
		return nil, domain.NutrientDelta{}, err
	}
	delta, err := a.Preview(candidate)
	if err != nil {
		return nil, domain.NutrientDelta{}, err
	}

	idx := findIngredient(meal.Ingredients, candidate.OriginalFood)
	if idx < 0 {
		return nil, domain.NutrientDelta{}, fmt.Errorf("%w: %q", domain.ErrIngredientNotInMeal, candidate.OriginalFood)
	}

	updated := meal.Clone()
	updated.Ingredients[idx] = candidate.ReplacementFood
	updated.Nutrients = meal.Nutrients.Add(candidate.Delta())

	return updated, delta, nil
}

// Preview returns the nutrient change a candidate would cause, without touching any meal
func (a *SwapApplier) Preview(candidate *domain.SwapCandidate) (domain.NutrientDelta, error) {
	if candidate == nil {
		return domain.NutrientDelta{}, fmt.Errorf("%w: candidate is nil", domain.ErrInvalidCandidate)
	}
	if !candidate.IsValid() {
		return domain.NutrientDelta{}, fmt.Errorf("%w: %q -> %q",
			domain.ErrInvalidCandidate, candidate.OriginalFood, candidate.ReplacementFood)
	}
	return domain.NewNutrientDelta(candidate.OriginalNutrients, candidate.ReplacementNutrients), nil
}

// findIngredient returns the index of the first ingredient whose name contains
// food, case-insensitively, or -1
func findIngredient(ingredients []string, food string) int {
	needle := strings.ToLower(strings.TrimSpace(food))
	for i, ingredient := range ingredients {
		if strings.Contains(strings.ToLower(ingredient), needle) {
			return i
		}
	}
	return -1
}
