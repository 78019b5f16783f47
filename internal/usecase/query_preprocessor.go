package usecase

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// QueryPreprocessor strips quantities and descriptors from free-text ingredient names
type QueryPreprocessor struct {
	logger *zap.Logger
}

var (
	// Matches amounts like "200g", "1.5 kg", "2 cups", "1/2 tbsp", "3 slices"
	quantityPattern = regexp.MustCompile(`\b\d+(?:[./]\d+)?\s*(?:kg|mg|g|grams?|ml|l|liters?|oz|ounces?|lbs?|pounds?|cups?|tbsp|tsp|tablespoons?|teaspoons?|slices?|pieces?|cloves?|cans?|handfuls?|pinch(?:es)?)?\b`)

	// Matches counts like "x2" or "2x"
	multiplierPattern = regexp.MustCompile(`\bx\d+\b|\b\d+x\b`)

	lonePunctuationPattern     = regexp.MustCompile(`\s+[,\-;:%]+\s+`)
	trailingPunctuationPattern = regexp.MustCompile(`[,\-;:%]+\s*$`)
	leadingPunctuationPattern  = regexp.MustCompile(`^\s*[,\-;:%]+`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// queryNoiseWords are descriptors that never change which food is meant
var queryNoiseWords = map[string]bool{
	// Size
	"large":  true,
	"medium": true,
	"small":  true,
	"jumbo":  true,
	"big":    true,
	"extra":  true,

	// Preparation
	"fresh":    true,
	"chopped":  true,
	"diced":    true,
	"sliced":   true,
	"minced":   true,
	"shredded": true,
	"grated":   true,
	"peeled":   true,
	"trimmed":  true,

	// Measure words left behind after numbers are removed
	"serving":  true,
	"servings": true,
	"portion":  true,
	"about":    true,
	"approx":   true,
	"some":     true,
	"of":       true,
}

// NewQueryPreprocessor creates a preprocessor; logger may be nil
func NewQueryPreprocessor(logger *zap.Logger) *QueryPreprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryPreprocessor{logger: logger.Named("query")}
}

// Clean lower-cases an ingredient name and removes amounts, multipliers and
// descriptor words, e.g. "2 Large Eggs" -> "eggs", "200g chicken breast" -> "chicken breast"
func (p *QueryPreprocessor) Clean(name string) string {
	if name == "" {
		return ""
	}

	cleaned := strings.ToLower(name)
	cleaned = quantityPattern.ReplaceAllString(cleaned, " ")
	cleaned = multiplierPattern.ReplaceAllString(cleaned, " ")
	cleaned = p.removeNoiseWords(cleaned)
	cleaned = cleanOrphanedPunctuation(cleaned)
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned != strings.ToLower(strings.TrimSpace(name)) {
		p.logger.Debug("cleaned ingredient query", zap.String("input", name), zap.String("output", cleaned))
	}
	return cleaned
}

// removeNoiseWords drops descriptor words, keeping any punctuation attached to the rest
func (p *QueryPreprocessor) removeNoiseWords(s string) string {
	words := strings.Fields(s)
	kept := make([]string, 0, len(words))

	for _, word := range words {
		if !queryNoiseWords[strings.Trim(word, ",.!?;:-'\"()")] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// cleanOrphanedPunctuation removes punctuation left alone after stripping words
func cleanOrphanedPunctuation(s string) string {
	result := lonePunctuationPattern.ReplaceAllString(s, " ")
	result = trailingPunctuationPattern.ReplaceAllString(result, "")
	return leadingPunctuationPattern.ReplaceAllString(result, "")
}
