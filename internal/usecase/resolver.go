package usecase

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/nutriswap/backend/internal/domain"
	"github.com/nutriswap/backend/internal/infrastructure/dataset"
)

// Resolver maps ingredient names to nutrient profiles using the loaded catalog
// overlaid with the fallback table. It is immutable after construction and safe
// for concurrent use.
type Resolver struct {
	profiles map[string]domain.NutrientProfile

	// groups holds food-group names for catalog keys
	groups map[string]string

	// keys is sorted alphabetically
	keys []string

	// matchOrder is sorted longest first, then alphabetically. Substring matching
	// walks it so the most specific key wins deterministically.
	matchOrder []string

	preprocessor *QueryPreprocessor
	logger       *zap.Logger
}

var _ domain.NutrientResolver = (*Resolver)(nil)

// NewResolver builds a resolver over the catalog. A nil catalog yields a
// resolver backed by the fallback table only.
func NewResolver(catalog *dataset.Catalog, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	profiles := make(map[string]domain.NutrientProfile, len(fallbackProfiles))
	groups := make(map[string]string)
	fromCatalog := 0
	if catalog != nil {
		for key, profile := range catalog.Profiles {
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				continue
			}
			profiles[key] = profile
			if group, ok := catalog.GroupName(key); ok {
				groups[key] = group
			}
			fromCatalog++
		}
	}
	// Catalog wins; fallback only fills gaps
	for key, profile := range fallbackProfiles {
		if _, exists := profiles[key]; !exists {
			profiles[key] = profile
		}
	}

	keys := make([]string, 0, len(profiles))
	for key := range profiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	matchOrder := append([]string(nil), keys...)
	sort.SliceStable(matchOrder, func(i, j int) bool {
		return len(matchOrder[i]) > len(matchOrder[j])
	})

	logger.Info("nutrient resolver ready",
		zap.Int("catalog_entries", fromCatalog),
		zap.Int("total_entries", len(profiles)),
	)

	return &Resolver{
		profiles:     profiles,
		groups:       groups,
		keys:         keys,
		matchOrder:   matchOrder,
		preprocessor: NewQueryPreprocessor(logger),
		logger:       logger.Named("resolver"),
	}
}

// Lookup returns the profile for an ingredient name. Exact key matches win over
// substring matches; names that match nothing get PlaceholderProfile.
func (r *Resolver) Lookup(name string) domain.NutrientProfile {
	if key, ok := r.match(name); ok {
		return r.profiles[key]
	}
	r.logger.Debug("no nutrient match, using placeholder", zap.String("name", name))
	return PlaceholderProfile
}

// Exists reports whether the normalized name is a known key
func (r *Resolver) Exists(name string) bool {
	_, ok := r.profiles[lookupKey(name)]
	return ok
}

// ClosestMatch returns the key Lookup would use for name
func (r *Resolver) ClosestMatch(name string) (string, bool) {
	return r.match(name)
}

// Search returns keys starting with term followed by keys containing it,
// each group sorted alphabetically.
func (r *Resolver) Search(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var prefix, contains []string
	for _, key := range r.keys {
		switch {
		case strings.HasPrefix(key, term):
			prefix = append(prefix, key)
		case strings.Contains(key, term):
			contains = append(contains, key)
		}
	}
	return append(prefix, contains...)
}

// AllIngredients returns every known key, sorted
func (r *Resolver) AllIngredients() []string {
	return append([]string(nil), r.keys...)
}

// Group returns the food-group name of the key Lookup would use for name.
// Fallback entries have no group.
func (r *Resolver) Group(name string) (string, bool) {
	key, ok := r.match(name)
	if !ok {
		return "", false
	}
	group, ok := r.groups[key]
	return group, ok
}

func (r *Resolver) match(name string) (string, bool) {
	key := lookupKey(name)
	if key == "" {
		return "", false
	}
	if _, ok := r.profiles[key]; ok {
		return key, true
	}
	// "200g chicken breast" and "2 large eggs" name a known key once amounts are gone
	if cleaned := r.preprocessor.Clean(key); cleaned != "" && cleaned != key {
		if _, ok := r.profiles[cleaned]; ok {
			return cleaned, true
		}
		key = cleaned
	}
	for _, candidate := range r.matchOrder {
		if strings.Contains(key, candidate) || strings.Contains(candidate, key) {
			return candidate, true
		}
	}
	return "", false
}

func lookupKey(name string) string {
	return strings.TrimSpace(dataset.NormalizeKey(name))
}
