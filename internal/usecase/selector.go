package usecase

import (
	"sort"
	"strings"

	"github.com/nutriswap/backend/internal/domain"
)

// StrategySelector maps goals to strategies
type StrategySelector struct {
	strategies map[string]SwapStrategy
}

// NewStrategySelector registers the given strategies under their goal type
func NewStrategySelector(strategies ...SwapStrategy) *StrategySelector {
	s := &StrategySelector{strategies: make(map[string]SwapStrategy, len(strategies))}
	for _, strategy := range strategies {
		s.strategies[strings.ToLower(strategy.GoalType())] = strategy
	}
	return s
}

// NewDefaultStrategySelector registers one strategy per nutrient and direction
func NewDefaultStrategySelector(resolver domain.NutrientResolver, table SubstitutionTable) *StrategySelector {
	if table == nil {
		table = DefaultSubstitutionTable()
	}
	var strategies []SwapStrategy
	for _, n := range domain.AllNutrients {
		for _, d := range []domain.Direction{domain.DirectionDecrease, domain.DirectionIncrease} {
			strategies = append(strategies, NewNutrientStrategy(n, d, resolver, table))
		}
	}
	return NewStrategySelector(strategies...)
}

// Select returns the strategy for a nutrient and direction
func (s *StrategySelector) Select(n domain.Nutrient, d domain.Direction) (SwapStrategy, bool) {
	strategy, ok := s.strategies[domain.GoalKey(n, d)]
	return strategy, ok
}

// ForGoal returns the strategy for a goal
func (s *StrategySelector) ForGoal(goal domain.SwapGoal) (SwapStrategy, bool) {
	return s.SelectByKey(goal.Key())
}

// SelectByKey resolves combined keys such as "decrease_fat", "Decrease-Fat",
// "fat decrease" or "increase_carbohydrates". Lookup is case-insensitive.
func (s *StrategySelector) SelectByKey(key string) (SwapStrategy, bool) {
	n, d, ok := ParseGoalKey(key)
	if !ok {
		return nil, false
	}
	return s.Select(n, d)
}

// Strategies returns every registered strategy ordered by goal type
func (s *StrategySelector) Strategies() []SwapStrategy {
	keys := make([]string, 0, len(s.strategies))
	for k := range s.strategies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]SwapStrategy, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.strategies[k])
	}
	return out
}

// ParseGoalKey splits a combined goal key into nutrient and direction.
// Either order is accepted; separators may be '_', '-' or whitespace.
func ParseGoalKey(key string) (domain.Nutrient, domain.Direction, bool) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	parts := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '\t'
	})
	if len(parts) != 2 {
		return "", "", false
	}

	if d, ok := domain.ParseDirection(parts[0]); ok {
		if n, ok := domain.ParseNutrient(parts[1]); ok {
			return n, d, true
		}
	}
	if d, ok := domain.ParseDirection(parts[1]); ok {
		if n, ok := domain.ParseNutrient(parts[0]); ok {
			return n, d, true
		}
	}
	return "", "", false
}
