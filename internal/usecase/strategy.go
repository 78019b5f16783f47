package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nutriswap/backend/internal/domain"
)

// SwapStrategy generates and scores substitutions for one (nutrient, direction) goal
type SwapStrategy interface {
	FindSwaps(food string, goal domain.SwapGoal) []domain.SwapCandidate
	GenerateSwaps(meal *domain.Meal, goal domain.SwapGoal) ([]domain.SwapCandidate, error)
	CalculateImpactScore(candidate domain.SwapCandidate, goal domain.SwapGoal) float64
	CanHandle(goal domain.SwapGoal) bool
	GoalType() string
	Description() string
}

// Default target deltas for absolute-scored nutrients when a goal leaves it at zero
const (
	defaultProteinTarget = 10.0 // grams
	defaultFiberTarget   = 5.0  // grams
)

// relativeScoring nutrients score by change relative to the original amount;
// the rest score against the goal's target delta.
var relativeScoring = map[domain.Nutrient]bool{
	domain.NutrientCalories: true,
	domain.NutrientFat:      true,
	domain.NutrientCarbs:    true,
	domain.NutrientSugar:    true,
}

var strategyDescriptions = map[string]string{
	"decrease_calories": "Replace energy-dense ingredients with lighter alternatives",
	"increase_calories": "Add energy with denser, nutrient-rich ingredients",
	"decrease_fat":      "Swap fatty cuts and rich dairy for leaner options",
	"increase_fat":      "Bring in sources of healthy fats",
	"increase_protein":  "Choose ingredients with more protein per serving",
	"decrease_protein":  "Lighten protein load with plant-based or low-protein foods",
	"decrease_carbs":    "Replace starches and sugars with low-carb vegetables and proteins",
	"increase_carbs":    "Add complex carbohydrates for sustained energy",
	"increase_fiber":    "Switch to whole grains, legumes and produce",
	"decrease_fiber":    "Use gentler, low-fiber staples",
	"decrease_sugar":    "Cut added sugars and sweet drinks",
	"increase_sugar":    "Add natural sugars from fruit",
}

// NutrientStrategy is the single strategy implementation, parameterized by the
// nutrient it targets and the direction it pushes that nutrient.
type NutrientStrategy struct {
	nutrient  domain.Nutrient
	direction domain.Direction
	resolver  domain.NutrientResolver
	table     SubstitutionTable
}

var _ SwapStrategy = (*NutrientStrategy)(nil)

// NewNutrientStrategy creates a strategy for one goal type
func NewNutrientStrategy(
	nutrient domain.Nutrient,
	direction domain.Direction,
	resolver domain.NutrientResolver,
	table SubstitutionTable,
) *NutrientStrategy {
	if table == nil {
		table = DefaultSubstitutionTable()
	}
	return &NutrientStrategy{
		nutrient:  nutrient,
		direction: direction,
		resolver:  resolver,
		table:     table,
	}
}

// Nutrient returns the targeted nutrient
func (s *NutrientStrategy) Nutrient() domain.Nutrient { return s.nutrient }

// Direction returns the direction the strategy pushes its nutrient
func (s *NutrientStrategy) Direction() domain.Direction { return s.direction }

// GoalType returns the combined key, e.g. "decrease_fat"
func (s *NutrientStrategy) GoalType() string {
	return domain.GoalKey(s.nutrient, s.direction)
}

// Description returns a human-readable summary of the strategy
func (s *NutrientStrategy) Description() string {
	if d, ok := strategyDescriptions[s.GoalType()]; ok {
		return d
	}
	return fmt.Sprintf("%s %s", s.direction, s.nutrient)
}

// CanHandle reports whether the goal targets this strategy's nutrient and direction
func (s *NutrientStrategy) CanHandle(goal domain.SwapGoal) bool {
	return goal.Nutrient == s.nutrient && goal.Direction == s.direction
}

// FindSwaps returns candidates for a single food, ranked by nutrient delta:
// most negative first when decreasing, most positive first when increasing.
// Only candidates that move the nutrient in the goal's direction are kept.
func (s *NutrientStrategy) FindSwaps(food string, goal domain.SwapGoal) []domain.SwapCandidate {
	food = strings.TrimSpace(food)
	if food == "" {
		return nil
	}

	original := s.resolver.Lookup(food)
	var candidates []domain.SwapCandidate
	for _, name := range s.table.CandidatesFor(s.GoalType(), food) {
		replacement := s.resolver.Lookup(name)
		delta := replacement.Get(s.nutrient) - original.Get(s.nutrient)
		if !s.direction.Improves(delta) {
			continue
		}

		candidate := domain.SwapCandidate{
			OriginalFood:         food,
			ReplacementFood:      name,
			Reason:               s.reason(food, name, delta),
			GoalTarget:           s.GoalType(),
			OriginalNutrients:    original,
			ReplacementNutrients: replacement,
		}
		candidate.ImpactScore = s.CalculateImpactScore(candidate, goal)
		candidates = append(candidates, candidate)
	}

	s.rank(candidates)
	return candidates
}

// GenerateSwaps pools FindSwaps over every ingredient of the meal and ranks the pool
func (s *NutrientStrategy) GenerateSwaps(meal *domain.Meal, goal domain.SwapGoal) ([]domain.SwapCandidate, error) {
	if err := meal.Validate(); err != nil {
		return nil, err
	}

	var pooled []domain.SwapCandidate
	for _, ingredient := range meal.Ingredients {
		pooled = append(pooled, s.FindSwaps(ingredient, goal)...)
	}

	s.rank(pooled)
	return pooled, nil
}

// CalculateImpactScore rates how strongly a candidate moves the nutrient, in [0,1].
// Calories, fat, carbs and sugar score min(1, 2·|Δ|/original); protein and fiber
// score min(1, |Δ|/target). Zero or wrong-direction changes score 0.
func (s *NutrientStrategy) CalculateImpactScore(candidate domain.SwapCandidate, goal domain.SwapGoal) float64 {
	delta := s.delta(candidate)
	if !s.direction.Improves(delta) {
		return 0
	}
	change := math.Abs(delta)

	if relativeScoring[s.nutrient] {
		original := candidate.OriginalNutrients.Get(s.nutrient)
		if original <= 0 {
			return 1
		}
		return math.Min(1, change/original*2)
	}

	target := goal.TargetDelta
	if target <= 0 {
		target = s.defaultTarget()
	}
	return math.Min(1, change/target)
}

func (s *NutrientStrategy) defaultTarget() float64 {
	if s.nutrient == domain.NutrientFiber {
		return defaultFiberTarget
	}
	return defaultProteinTarget
}

func (s *NutrientStrategy) delta(c domain.SwapCandidate) float64 {
	return c.ReplacementNutrients.Get(s.nutrient) - c.OriginalNutrients.Get(s.nutrient)
}

// rank sorts by delta in the strategy's direction; ties fall back to replacement
// name so output is stable across runs.
func (s *NutrientStrategy) rank(candidates []domain.SwapCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := s.delta(candidates[i]), s.delta(candidates[j])
		if di != dj {
			if s.direction == domain.DirectionDecrease {
				return di < dj
			}
			return di > dj
		}
		return candidates[i].ReplacementFood < candidates[j].ReplacementFood
	})
}

func (s *NutrientStrategy) reason(food, replacement string, delta float64) string {
	verb := "boost"
	if s.direction == domain.DirectionDecrease {
		verb = "cut"
	}
	return fmt.Sprintf("Swap %s for %s to %s %s by %.1f %s",
		food, replacement, verb, s.nutrient, math.Abs(delta), s.nutrient.Unit())
}
