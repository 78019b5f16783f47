package usecase

import (
	"sort"

	"go.uber.org/zap"

	"github.com/nutriswap/backend/internal/domain"
)

// RecommenderConfig holds configuration for the recommendation aggregator
type RecommenderConfig struct {
	MaxPerGoal     int
	MinImpactScore float64
}

// Recommender runs strategies over a meal for several goals and merges the results
type Recommender struct {
	selector       *StrategySelector
	maxPerGoal     int
	minImpactScore float64
	logger         *zap.Logger
}

// NewRecommender creates a recommender with the given selector
func NewRecommender(selector *StrategySelector, config RecommenderConfig, logger *zap.Logger) *Recommender {
	maxPerGoal := config.MaxPerGoal
	if maxPerGoal <= 0 {
		maxPerGoal = 5
	}
	minImpact := config.MinImpactScore
	if minImpact <= 0 {
		minImpact = 0.1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Recommender{
		selector:       selector,
		maxPerGoal:     maxPerGoal,
		minImpactScore: minImpact,
		logger:         logger.Named("recommender"),
	}
}

// Recommend returns swaps for the meal ranked by impact score, highest first.
// Goals without a strategy or whose strategy fails are logged and skipped.
// Each goal contributes at most MaxPerGoal candidates scoring above
// MinImpactScore, and no two results share the same (original, replacement) pair.
func (r *Recommender) Recommend(meal *domain.Meal, goals []domain.SwapGoal) ([]domain.SwapCandidate, error) {
	if err := meal.Validate(); err != nil {
		return nil, err
	}

	var pooled []domain.SwapCandidate
	for _, goal := range goals {
		strategy, ok := r.selector.ForGoal(goal)
		if !ok {
			r.logger.Warn("no strategy for goal, skipping", zap.String("goal", goal.Key()))
			continue
		}

		candidates, err := strategy.GenerateSwaps(meal, goal)
		if err != nil {
			r.logger.Error("strategy failed, skipping goal",
				zap.String("goal", goal.Key()),
				zap.Error(err),
			)
			continue
		}

		kept := r.filter(candidates)
		r.logger.Debug("goal candidates",
			zap.String("goal", goal.Key()),
			zap.Int("generated", len(candidates)),
			zap.Int("kept", len(kept)),
		)
		pooled = append(pooled, kept...)
	}

	result := dedupe(pooled)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ImpactScore > result[j].ImpactScore
	})
	return result, nil
}

func (r *Recommender) filter(candidates []domain.SwapCandidate) []domain.SwapCandidate {
	kept := make([]domain.SwapCandidate, 0, r.maxPerGoal)
	for _, c := range candidates {
		if len(kept) == r.maxPerGoal {
			break
		}
		if !c.IsValid() || c.ImpactScore <= r.minImpactScore {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// dedupe keeps the first candidate for each unordered (original, replacement) pair
func dedupe(candidates []domain.SwapCandidate) []domain.SwapCandidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]domain.SwapCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := c.PairKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
