package dataset

import "strings"

// categoryPrefixes are food-group words that lead raw catalog names,
// e.g. "Beverages, coffee, brewed". Matched as substrings of the first segment.
var categoryPrefixes = []string{
	"dairy",
	"vegetables",
	"meat",
	"cereals",
	"beverages",
	"fruits",
	"spices",
	"fats and oils",
	"soups",
	"sauces",
	"sausages",
	"baked products",
	"sweets",
	"legumes",
	"nut and seed",
	"snacks",
	"baby foods",
	"fast foods",
	"restaurant foods",
	"poultry products",
	"finfish",
}

// reversibleNouns are heads that read better after their qualifier:
// "Cheese, blue" becomes "blue cheese".
var reversibleNouns = map[string]bool{
	"cheese":  true,
	"milk":    true,
	"bread":   true,
	"rice":    true,
	"potato":  true,
	"meat":    true,
	"fish":    true,
	"chicken": true,
	"beef":    true,
	"turkey":  true,
	"pork":    true,
}

// NormalizeName turns a category-first catalog name into a display name.
//
//   - no comma: trimmed as-is
//   - first segment contains a category prefix: segment dropped, rest joined with ", "
//   - exactly two segments with a reversible head noun: "type noun"
//   - anything else: trimmed as-is
//
// The rules are lossy but deterministic.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if !strings.Contains(name, ",") {
		return name
	}

	parts := strings.Split(name, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	first := strings.ToLower(parts[0])
	if hasCategoryPrefix(first) {
		rest := make([]string, 0, len(parts)-1)
		for _, p := range parts[1:] {
			if p != "" {
				rest = append(rest, p)
			}
		}
		if len(rest) == 0 {
			return name
		}
		return strings.Join(rest, ", ")
	}

	if len(parts) == 2 && parts[1] != "" && reversibleNouns[first] {
		return parts[1] + " " + first
	}

	return name
}

// NormalizeKey returns the resolver lookup key for a raw name
func NormalizeKey(raw string) string {
	return strings.ToLower(NormalizeName(raw))
}

func hasCategoryPrefix(segment string) bool {
	for _, prefix := range categoryPrefixes {
		if strings.Contains(segment, prefix) {
			return true
		}
	}
	return false
}
