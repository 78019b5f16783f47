package usecase

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SubstitutionRule maps ingredient keywords to candidate replacements.
// A rule without keywords is the default for its goal.
type SubstitutionRule struct {
	Keywords   []string `mapstructure:"keywords"`
	Candidates []string `mapstructure:"candidates"`
}

// SubstitutionTable holds the rules for every goal key ("decrease_fat", ...).
// It is shared read-only by all strategies.
type SubstitutionTable map[string][]SubstitutionRule

// CandidatesFor returns replacement names for food under goalKey. Candidates of
// every rule whose keyword occurs in food are returned in rule order; when no
// keyword rule matches, the default rules apply. The food itself is never returned.
func (t SubstitutionTable) CandidatesFor(goalKey, food string) []string {
	rules := t[strings.ToLower(goalKey)]
	name := strings.ToLower(strings.TrimSpace(food))

	var matched, defaults []SubstitutionRule
	for _, rule := range rules {
		if len(rule.Keywords) == 0 {
			defaults = append(defaults, rule)
			continue
		}
		for _, kw := range rule.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(name, kw) {
				matched = append(matched, rule)
				break
			}
		}
	}
	if len(matched) == 0 {
		matched = defaults
	}

	seen := map[string]bool{name: true}
	var out []string
	for _, rule := range matched {
		for _, c := range rule.Candidates {
			key := strings.ToLower(strings.TrimSpace(c))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// LoadSubstitutionTable reads a table from a YAML/JSON/TOML file under the
// "substitutions" key. Goal keys not present in the file keep their defaults.
func LoadSubstitutionTable(path string) (SubstitutionTable, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading substitution file: %w", err)
	}

	var loaded SubstitutionTable
	if err := v.UnmarshalKey("substitutions", &loaded); err != nil {
		return nil, fmt.Errorf("unable to decode substitution table: %w", err)
	}
	if len(loaded) == 0 {
		return nil, fmt.Errorf("substitution file %s has no rules", path)
	}

	table := DefaultSubstitutionTable()
	for key, rules := range loaded {
		table[strings.ToLower(key)] = rules
	}
	return table, nil
}

func rule(keywords []string, candidates ...string) SubstitutionRule {
	return SubstitutionRule{Keywords: keywords, Candidates: candidates}
}

func defaults(candidates ...string) SubstitutionRule {
	return SubstitutionRule{Candidates: candidates}
}

var (
	redMeats  = []string{"beef", "pork", "lamb", "bacon", "sausage", "steak", "ham"}
	poultry   = []string{"chicken", "turkey"}
	seafood   = []string{"fish", "salmon", "tuna", "shrimp"}
	richDairy = []string{"cheese", "cream", "butter"}
	starches  = []string{"rice", "pasta", "noodle", "bread", "potato"}
	sweets    = []string{"sugar", "honey", "soda", "juice", "syrup", "candy"}
	nuts      = []string{"almond", "peanut", "nut", "cashew"}
	greens    = []string{"lettuce", "spinach", "zucchini", "broccoli", "cauliflower", "cucumber"}
	legumes   = []string{"bean", "lentil", "chickpea"}
)

// DefaultSubstitutionTable returns the built-in rules. Every candidate name
// resolves through the fallback table.
func DefaultSubstitutionTable() SubstitutionTable {
	return SubstitutionTable{
		"decrease_calories": {
			rule(redMeats, "chicken breast", "turkey breast", "fish", "tofu"),
			rule(richDairy, "cottage cheese", "greek yogurt", "skim milk"),
			rule([]string{"milk"}, "skim milk"),
			rule(starches, "cauliflower", "zucchini", "broccoli"),
			rule(sweets, "sparkling water", "berries", "apple"),
			rule(nuts, "apple", "carrot", "berries"),
			rule([]string{"oil"}, "avocado"),
			defaults("broccoli", "spinach", "lettuce", "zucchini"),
		},
		"increase_calories": {
			rule(greens, "avocado", "sweet potato", "quinoa"),
			rule(append(poultry, "tofu", "egg", "fish"), "salmon", "beef", "peanut butter"),
			rule([]string{"milk", "yogurt"}, "milk", "cream", "cheese"),
			rule(starches, "oats", "whole wheat bread", "quinoa"),
			defaults("almonds", "peanut butter", "avocado", "oats"),
		},
		"decrease_fat": {
			rule(redMeats, "chicken breast", "turkey breast", "fish", "tofu", "egg whites"),
			rule(richDairy, "cottage cheese", "greek yogurt", "skim milk"),
			rule([]string{"milk"}, "skim milk"),
			rule([]string{"chicken"}, "chicken breast", "turkey breast", "fish"),
			rule([]string{"egg"}, "egg whites"),
			rule([]string{"oil"}, "avocado", "greek yogurt"),
			rule(nuts, "berries", "apple"),
			defaults("broccoli", "spinach", "lentils"),
		},
		"increase_fat": {
			rule(append(poultry, seafood...), "salmon"),
			rule(starches, "avocado", "almonds"),
			defaults("avocado", "almonds", "salmon", "olive oil", "peanut butter"),
		},
		"increase_protein": {
			rule(redMeats, "chicken breast", "turkey breast"),
			rule(starches, "quinoa", "lentils", "chickpeas", "black beans"),
			rule([]string{"milk", "yogurt", "cream"}, "greek yogurt", "cottage cheese", "skim milk"),
			rule(greens, "tofu", "tempeh", "lentils"),
			defaults("chicken breast", "greek yogurt", "egg whites", "lentils", "tofu"),
		},
		"decrease_protein": {
			rule(append(append(redMeats, poultry...), seafood...), "tofu", "lentils", "chickpeas", "black beans"),
			rule([]string{"cheese", "yogurt"}, "milk", "cream"),
			defaults("zucchini", "lettuce", "apple"),
		},
		"decrease_carbs": {
			rule([]string{"rice"}, "cauliflower", "broccoli", "quinoa"),
			rule([]string{"pasta", "noodle"}, "zucchini", "spinach"),
			rule([]string{"bread"}, "lettuce", "egg"),
			rule([]string{"potato"}, "cauliflower", "broccoli"),
			rule(sweets, "sparkling water", "berries"),
			rule([]string{"banana", "apple", "fruit"}, "berries", "avocado"),
			defaults("spinach", "broccoli", "egg", "tofu"),
		},
		"increase_carbs": {
			rule(append(append(redMeats, poultry...), "fish", "egg"), "sweet potato", "brown rice", "quinoa", "oats"),
			rule(greens, "sweet potato", "potato", "banana"),
			defaults("oats", "sweet potato", "brown rice", "banana", "quinoa"),
		},
		"increase_fiber": {
			rule([]string{"rice"}, "brown rice", "quinoa", "lentils"),
			rule([]string{"bread"}, "whole wheat bread", "oats"),
			rule([]string{"pasta", "noodle"}, "lentils", "chickpeas", "black beans"),
			rule([]string{"potato"}, "sweet potato", "lentils"),
			rule(append(redMeats, poultry...), "lentils", "black beans", "chickpeas"),
			rule(sweets, "berries", "apple"),
			defaults("lentils", "black beans", "chickpeas", "oats", "berries", "broccoli"),
		},
		"decrease_fiber": {
			rule(legumes, "tofu", "white rice"),
			rule([]string{"oats", "brown rice", "whole wheat"}, "white rice", "white bread", "pasta"),
			defaults("white rice", "egg", "chicken breast"),
		},
		"decrease_sugar": {
			rule([]string{"soda", "juice"}, "sparkling water"),
			rule([]string{"sugar", "honey", "syrup", "candy"}, "berries", "apple"),
			rule([]string{"banana", "fruit"}, "berries", "avocado"),
			rule([]string{"milk", "yogurt"}, "greek yogurt", "almonds"),
			defaults("sparkling water", "berries", "avocado", "greek yogurt"),
		},
		"increase_sugar": {
			defaults("banana", "apple", "berries", "honey", "sweet potato"),
		},
	}
}
