package domain

import (
	"fmt"
	"strings"
)

// Direction is the way a goal wants a nutrient to move
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// ParseDirection resolves a direction case-insensitively
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "increase", "inc", "raise", "more":
		return DirectionIncrease, true
	case "decrease", "dec", "reduce", "lower", "less":
		return DirectionDecrease, true
	}
	return "", false
}

// Improves reports whether delta moves a nutrient in this direction
func (d Direction) Improves(delta float64) bool {
	if d == DirectionDecrease {
		return delta < 0
	}
	return delta > 0
}

// GoalKey returns the combined "direction_nutrient" identifier, e.g. "decrease_fat"
func GoalKey(n Nutrient, d Direction) string {
	return string(d) + "_" + string(n)
}

// SwapGoal describes what the user wants to change about a meal
type SwapGoal struct {
	Nutrient    Nutrient  `json:"nutrient"`
	Direction   Direction `json:"direction"`
	Intensity   float64   `json:"intensity"`
	TargetDelta float64   `json:"targetDelta"`
}

// NewSwapGoal builds a goal, clamping intensity to [0,1] and target delta to >= 0
func NewSwapGoal(n Nutrient, d Direction, intensity, targetDelta float64) SwapGoal {
	return SwapGoal{
		Nutrient:    n,
		Direction:   d,
		Intensity:   clamp01(intensity),
		TargetDelta: max(targetDelta, 0),
	}
}

// Key returns the goal's combined identifier
func (g SwapGoal) Key() string {
	return GoalKey(g.Nutrient, g.Direction)
}

// IsZero reports whether the goal is unset
func (g SwapGoal) IsZero() bool {
	return g.Nutrient == "" && g.Direction == ""
}

// Severity labels the goal's intensity for display
func (g SwapGoal) Severity() string {
	switch {
	case g.Intensity >= 0.67:
		return "strong"
	case g.Intensity >= 0.34:
		return "moderate"
	default:
		return "mild"
	}
}

// String renders the goal as "decrease fat (moderate)"
func (g SwapGoal) String() string {
	return fmt.Sprintf("%s %s (%s)", g.Direction, g.Nutrient, g.Severity())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SwapCandidate is a proposed ingredient substitution
type SwapCandidate struct {
	OriginalFood         string          `json:"originalFood"`
	ReplacementFood      string          `json:"replacementFood"`
	Reason               string          `json:"reason"`
	GoalTarget           string          `json:"goalTarget"`
	ImpactScore          float64         `json:"impactScore"`
	OriginalNutrients    NutrientProfile `json:"originalNutrients"`
	ReplacementNutrients NutrientProfile `json:"replacementNutrients"`
	HistoryID            string          `json:"historyId,omitempty"`
}

// Delta returns replacement minus original
func (c SwapCandidate) Delta() NutrientProfile {
	return c.ReplacementNutrients.Sub(c.OriginalNutrients)
}

// IsValid reports whether the candidate names two distinct foods and a goal
func (c SwapCandidate) IsValid() bool {
	orig := strings.TrimSpace(c.OriginalFood)
	repl := strings.TrimSpace(c.ReplacementFood)
	if orig == "" || repl == "" || strings.TrimSpace(c.GoalTarget) == "" {
		return false
	}
	return !strings.EqualFold(orig, repl)
}

// PairKey identifies the unordered (original, replacement) pair
func (c SwapCandidate) PairKey() string {
	a := strings.ToLower(strings.TrimSpace(c.OriginalFood))
	b := strings.ToLower(strings.TrimSpace(c.ReplacementFood))
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// ParseSwapGoal canonicalizes nutrient and direction spellings and applies the
// same clamping as NewSwapGoal
func ParseSwapGoal(nutrient, direction string, intensity, targetDelta float64) (SwapGoal, error) {
	n, ok := ParseNutrient(nutrient)
	if !ok {
		return SwapGoal{}, fmt.Errorf("%w: unknown nutrient %q", ErrInvalidGoal, nutrient)
	}
	d, ok := ParseDirection(direction)
	if !ok {
		return SwapGoal{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidGoal, direction)
	}
	return NewSwapGoal(n, d, intensity, targetDelta), nil
}
