package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriswap/backend/internal/domain"
)

// SwapServiceConfig holds configuration for the swap service
type SwapServiceConfig struct {
	CacheTTL time.Duration
	Match    MatchConfig
}

// SwapService is the entry point for lookups, recommendations and applying swaps
type SwapService struct {
	resolver    domain.NutrientResolver
	selector    *StrategySelector
	recommender *Recommender
	applier     *SwapApplier
	matcher     *IngredientMatcher
	cache       domain.CacheRepository
	history     domain.SwapHistoryRepository
	metrics     domain.SwapMetrics
	cacheTTL    time.Duration
	logger      *zap.Logger

	now   func() time.Time
	newID func() string
}

// ApplyResult is the outcome of applying a swap
type ApplyResult struct {
	Meal      *domain.Meal         `json:"meal"`
	Candidate domain.SwapCandidate `json:"candidate"`
	Delta     domain.NutrientDelta `json:"delta"`
}

// NewSwapService creates a swap service. cache and history may be nil.
func NewSwapService(
	resolver domain.NutrientResolver,
	selector *StrategySelector,
	recommender *Recommender,
	cache domain.CacheRepository,
	history domain.SwapHistoryRepository,
	config SwapServiceConfig,
	logger *zap.Logger,
) *SwapService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SwapService{
		resolver:    resolver,
		selector:    selector,
		recommender: recommender,
		applier:     NewSwapApplier(),
		matcher:     NewIngredientMatcher(resolver, config.Match, logger),
		cache:       cache,
		history:     history,
		metrics:     nopMetrics{},
		cacheTTL:    cacheTTL,
		logger:      logger.Named("swaps"),
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// SetMetrics routes swap activity to m. A nil m disables reporting.
func (s *SwapService) SetMetrics(m domain.SwapMetrics) {
	if m == nil {
		m = nopMetrics{}
	}
	s.metrics = m
}

// Ingredient returns the resolver's view of a single name. Names without an
// exact entry carry "did you mean" suggestions.
func (s *SwapService) Ingredient(name string) domain.IngredientInfo {
	key, ok := s.resolver.ClosestMatch(name)
	info := domain.IngredientInfo{
		Query:     name,
		Exists:    s.resolver.Exists(name),
		Nutrients: s.resolver.Lookup(name),
	}
	if ok {
		info.MatchedKey = key
	}
	if group, ok := s.resolver.Group(name); ok {
		info.Group = group
	}
	if !info.Exists {
		for _, suggestion := range s.matcher.Suggest(name) {
			info.Suggestions = append(info.Suggestions, suggestion.Key)
		}
	}
	return info
}

// SearchIngredients returns matching keys, or every key when term is empty
func (s *SwapService) SearchIngredients(term string) []string {
	if strings.TrimSpace(term) == "" {
		return s.resolver.AllIngredients()
	}
	return s.resolver.Search(term)
}

// Strategies lists the registered strategies
func (s *SwapService) Strategies() []SwapStrategy {
	return s.selector.Strategies()
}

// ComputeTotals sums per-100g profiles scaled by each ingredient's quantity in grams
func (s *SwapService) ComputeTotals(meal *domain.Meal) (domain.NutrientProfile, error) {
	if err := meal.Validate(); err != nil {
		return domain.NutrientProfile{}, err
	}
	total := domain.NutrientProfile{}
	for i, ingredient := range meal.Ingredients {
		total = total.Add(s.resolver.Lookup(ingredient).Scale(meal.Quantities[i] / 100))
	}
	return total, nil
}

// FindSwaps returns ranked candidates for a single food
func (s *SwapService) FindSwaps(food string, goal domain.SwapGoal) ([]domain.SwapCandidate, error) {
	if strings.TrimSpace(food) == "" {
		return nil, fmt.Errorf("%w: food name is required", domain.ErrInvalidRequest)
	}
	strategy, ok := s.selector.ForGoal(goal)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoStrategy, goal.Key())
	}
	return strategy.FindSwaps(food, goal), nil
}

// Recommend returns ranked swaps for a meal. Results are cached per meal
// contents and goals; cache failures are logged and otherwise ignored.
func (s *SwapService) Recommend(ctx context.Context, meal *domain.Meal, goals []domain.SwapGoal) ([]domain.SwapCandidate, error) {
	if err := meal.Validate(); err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("%w: at least one goal is required", domain.ErrInvalidRequest)
	}

	cacheKey := recommendationCacheKey(meal, goals)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		s.metrics.CacheLookup(true)
		s.metrics.RecommendationsServed(len(cached))
		return cached, nil
	}
	s.metrics.CacheLookup(false)

	candidates, err := s.recommender.Recommend(meal, goals)
	if err != nil {
		return nil, err
	}
	s.metrics.RecommendationsServed(len(candidates))

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, candidates, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache recommendations", zap.Error(err))
		}
	}
	return candidates, nil
}

// Preview returns the nutrient delta of a candidate without applying it
func (s *SwapService) Preview(candidate *domain.SwapCandidate) (domain.NutrientDelta, error) {
	return s.applier.Preview(candidate)
}

// ApplySwap applies the candidate to a copy of the meal and records it in
// history. The returned candidate carries the assigned history id.
func (s *SwapService) ApplySwap(ctx context.Context, meal *domain.Meal, candidate *domain.SwapCandidate) (*ApplyResult, error) {
	working := meal
	if meal != nil && meal.Nutrients.IsZero() {
		totals, err := s.ComputeTotals(meal)
		if err != nil {
			return nil, err
		}
		working = meal.Clone()
		working.Nutrients = totals
	}

	updated, delta, err := s.applier.Apply(working, candidate)
	if err != nil {
		return nil, err
	}

	applied := *candidate
	applied.HistoryID = s.newID()

	if s.history != nil {
		record := &domain.SwapRecord{
			ID:              applied.HistoryID,
			ProfileID:       meal.ProfileID,
			OriginalFood:    applied.OriginalFood,
			ReplacementFood: applied.ReplacementFood,
			GoalTarget:      applied.GoalTarget,
			ImpactScore:     applied.ImpactScore,
			Delta:           delta,
			AppliedAt:       s.now().UTC(),
		}
		if err := s.history.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to record swap: %w", err)
		}
	}

	s.metrics.SwapApplied(applied.GoalTarget)
	s.logger.Info("swap applied",
		zap.String("history_id", applied.HistoryID),
		zap.String("original", applied.OriginalFood),
		zap.String("replacement", applied.ReplacementFood),
		zap.Float64("calorie_delta", delta.Calories),
	)

	return &ApplyResult{Meal: updated, Candidate: applied, Delta: delta}, nil
}

// History lists applied swaps, newest first
func (s *SwapService) History(ctx context.Context, profileID string, limit int) ([]domain.SwapRecord, error) {
	if s.history == nil {
		return []domain.SwapRecord{}, nil
	}
	return s.history.List(ctx, profileID, limit)
}

// HistoryRecord returns one applied swap
func (s *SwapService) HistoryRecord(ctx context.Context, id string) (*domain.SwapRecord, error) {
	if s.history == nil {
		return nil, domain.ErrHistoryNotFound
	}
	return s.history.Get(ctx, id)
}

func (s *SwapService) getFromCache(ctx context.Context, key string) ([]domain.SwapCandidate, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if candidates, ok := value.([]domain.SwapCandidate); ok {
		return candidates, nil
	}

	// Caches that serialize hand back generic JSON values
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		if raw, err = json.Marshal(v); err != nil {
			return nil, domain.ErrCacheMiss
		}
	}
	var candidates []domain.SwapCandidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		s.logger.Debug("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil, domain.ErrCacheMiss
	}
	return candidates, nil
}

type nopMetrics struct{}

func (nopMetrics) CacheLookup(bool)          {}
func (nopMetrics) RecommendationsServed(int) {}
func (nopMetrics) SwapApplied(string)        {}

// recommendationCacheKey hashes meal contents and goals.
// Format: "swaps:{sha256}"
func recommendationCacheKey(meal *domain.Meal, goals []domain.SwapGoal) string {
	var b strings.Builder
	for i, ingredient := range meal.Ingredients {
		fmt.Fprintf(&b, "%s=%g;", strings.ToLower(strings.TrimSpace(ingredient)), meal.Quantities[i])
	}
	b.WriteString("|")
	for _, g := range goals {
		fmt.Fprintf(&b, "%s:%g:%g;", g.Key(), g.Intensity, g.TargetDelta)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return "swaps:" + hex.EncodeToString(sum[:])
}
