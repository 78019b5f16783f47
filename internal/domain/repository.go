package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// NutrientResolver maps free-text ingredient names to nutrient profiles.
// Lookup never fails; unknown names resolve to a placeholder profile.
type NutrientResolver interface {
	Lookup(name string) NutrientProfile
	Exists(name string) bool
	ClosestMatch(name string) (string, bool)
	Group(name string) (string, bool)
	Search(term string) []string
	AllIngredients() []string
}

// SwapHistoryRepository persists applied swaps
type SwapHistoryRepository interface {
	Save(ctx context.Context, record *SwapRecord) error
	Get(ctx context.Context, id string) (*SwapRecord, error)
	List(ctx context.Context, profileID string, limit int) ([]SwapRecord, error)
}

// SwapMetrics receives swap activity for monitoring
type SwapMetrics interface {
	CacheLookup(hit bool)
	RecommendationsServed(candidates int)
	SwapApplied(goalTarget string)
}
