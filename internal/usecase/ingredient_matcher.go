package usecase

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/nutriswap/backend/internal/domain"
)

var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Token weight categories for scoring
const (
	weightFood        = 3.0 // Core food terms (milk, chicken, rice)
	weightDescriptive = 2.0 // Descriptive terms (whole, skim, brown)
	weightDefault     = 1.0
	fuzzyWeightFactor = 0.8 // Fuzzy matches get 80% of normal weight
)

const substringMatchBonus = 10.0

// foodTerms contains high-importance food keywords
var foodTerms = map[string]bool{
	// Proteins
	"chicken": true, "beef": true, "pork": true, "fish": true, "salmon": true,
	"turkey": true, "lamb": true, "tofu": true, "tempeh": true, "bacon": true,
	"egg": true, "eggs": true, "shrimp": true, "tuna": true,
	// Dairy
	"milk": true, "cheese": true, "yogurt": true, "butter": true, "cream": true,
	// Grains and starches
	"bread": true, "rice": true, "pasta": true, "oats": true, "quinoa": true,
	"potato": true, "wheat": true, "noodles": true,
	// Produce
	"apple": true, "banana": true, "berries": true, "avocado": true, "lettuce": true,
	"broccoli": true, "spinach": true, "cauliflower": true, "zucchini": true, "carrot": true,
	// Legumes and nuts
	"beans": true, "lentils": true, "chickpeas": true, "almonds": true, "peanut": true,
	// Sweets and drinks
	"sugar": true, "honey": true, "soda": true, "water": true, "juice": true,
	"oil": true,
}

// descriptiveTerms contains medium-importance descriptive keywords
var descriptiveTerms = map[string]bool{
	"whole": true, "skim": true, "reduced": true, "fat": true, "low": true,
	"nonfat": true, "lean": true, "ground": true, "raw": true, "cooked": true,
	"grilled": true, "baked": true, "fried": true, "roasted": true, "steamed": true,
	"white": true, "brown": true, "sweet": true, "greek": true, "cottage": true,
	"olive": true, "black": true, "sparkling": true, "breast": true, "whites": true,
}

// extendedStopWords includes basic English stop words plus measure words
var extendedStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "to": true, "for": true,
	"with": true, "from": true,
	"oz": true, "lb": true, "lbs": true, "ml": true, "gram": true,
	"grams": true, "kg": true, "cup": true, "cups": true, "tbsp": true,
	"tsp": true, "slice": true, "slices": true, "piece": true, "pieces": true,
}

// MatchConfig holds configuration for the ingredient matcher
type MatchConfig struct {
	MinScore          float64
	MaxSuggestions    int
	FuzzyEditDistance int
}

// Suggestion is a known ingredient key that resembles a query
type Suggestion struct {
	Key           string   `json:"key"`
	Score         float64  `json:"score"`
	MatchedTokens []string `json:"matchedTokens,omitempty"`
}

// IngredientMatcher ranks known ingredient keys by token similarity to a query.
// It tolerates typos through edit-distance matching on longer tokens.
type IngredientMatcher struct {
	resolver          domain.NutrientResolver
	preprocessor      *QueryPreprocessor
	minScore          float64
	maxSuggestions    int
	fuzzyEditDistance int
	logger            *zap.Logger
}

// NewIngredientMatcher creates a matcher over the resolver's known keys
func NewIngredientMatcher(resolver domain.NutrientResolver, config MatchConfig, logger *zap.Logger) *IngredientMatcher {
	minScore := config.MinScore
	if minScore <= 0 {
		minScore = 40.0
	}
	maxSuggestions := config.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = 5
	}
	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &IngredientMatcher{
		resolver:          resolver,
		preprocessor:      NewQueryPreprocessor(logger),
		minScore:          minScore,
		maxSuggestions:    maxSuggestions,
		fuzzyEditDistance: fuzzyDist,
		logger:            logger.Named("matcher"),
	}
}

// Suggest returns up to MaxSuggestions keys scoring at least MinScore,
// best first; equal scores are ordered by key.
func (m *IngredientMatcher) Suggest(query string) []Suggestion {
	cleaned := m.preprocessor.Clean(query)
	queryTokens := tokenize(cleaned)
	if len(queryTokens) == 0 {
		return nil
	}

	var suggestions []Suggestion
	for _, key := range m.resolver.AllIngredients() {
		score, matched := m.calculateMatchScore(cleaned, queryTokens, key)
		if score < m.minScore {
			continue
		}
		suggestions = append(suggestions, Suggestion{Key: key, Score: score, MatchedTokens: matched})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Key < suggestions[j].Key
	})
	if len(suggestions) > m.maxSuggestions {
		suggestions = suggestions[:m.maxSuggestions]
	}

	m.logger.Debug("suggestions",
		zap.String("query", query),
		zap.Int("count", len(suggestions)),
	)
	return suggestions
}

// calculateMatchScore computes similarity between a query and a key on a 0-100 scale.
// Uses a weighted combination of:
//   - query coverage: weighted share of query tokens found in the key (fuzzy hits count 80%)
//   - key coverage: share of key tokens found verbatim in the query
//   - Jaccard overlap of the two token sets
//
// plus a bonus when one string contains the other.
func (m *IngredientMatcher) calculateMatchScore(query string, queryTokens []string, key string) (float64, []string) {
	keyTokens := tokenize(key)
	if len(queryTokens) == 0 || len(keyTokens) == 0 {
		return 0, nil
	}

	keySet := make(map[string]bool, len(keyTokens))
	for _, t := range keyTokens {
		keySet[t] = true
	}

	var totalWeight, matchedWeight float64
	var matched []string
	for _, qt := range queryTokens {
		w := getTokenWeight(qt)
		totalWeight += w
		if keySet[qt] {
			matchedWeight += w
			matched = append(matched, qt)
			continue
		}
		for _, kt := range keyTokens {
			if fuzzyTokenMatch(qt, kt, m.fuzzyEditDistance) {
				matchedWeight += w * fuzzyWeightFactor
				matched = append(matched, kt)
				break
			}
		}
	}
	queryCoverage := matchedWeight / totalWeight

	keyMatched, _ := findIntersection(keyTokens, queryTokens)
	keyCoverage := float64(keyMatched) / float64(len(keyTokens))

	jaccard := min(1, float64(len(matched))/float64(findUnion(queryTokens, keyTokens)))

	score := (queryCoverage*0.60 + keyCoverage*0.20 + jaccard*0.20) * 100

	if len(query) > 3 && (strings.Contains(key, query) || strings.Contains(query, key)) {
		score += substringMatchBonus
	}

	return min(score, 100), matched
}

// getTokenWeight returns the scoring weight for a token
func getTokenWeight(token string) float64 {
	switch {
	case foodTerms[token]:
		return weightFood
	case descriptiveTerms[token]:
		return weightDescriptive
	default:
		return weightDefault
	}
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || extendedStopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// Only apply fuzzy matching to tokens of 4+ chars to avoid false positives
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rows instead of the full matrix
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// findIntersection returns the count of common tokens and the matched tokens
func findIntersection(tokens1, tokens2 []string) (int, []string) {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			matched = append(matched, t)
			seen[t] = true
		}
	}

	return len(matched), matched
}

// findUnion returns the count of unique tokens across both sets
func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
