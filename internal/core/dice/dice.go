// Package dice rolls dice from an injected randomness source.
package dice

import apperrors "github.com/louisbranch/herosheet/internal/platform/errors"

var (
	// ErrMissingDice is returned when a roll names no dice.
	ErrMissingDice = apperrors.New(apperrors.CodeDiceMissing, "at least one die is required")
	// ErrInvalidDiceSpec is returned when a spec has no sides or no dice.
	ErrInvalidDiceSpec = apperrors.New(apperrors.CodeDiceInvalidSpec, "dice spec requires positive sides and count")
)

// Spec describes Count dice with Sides faces each.
type Spec struct {
	Sides int
	Count int
}

// Roll is the outcome of one Spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Result is the outcome of a list of specs.
type Result struct {
	Rolls []Roll
	Total int
}

// Values returns every die result in spec order.
func (r Result) Values() []int {
	var out []int
	for _, roll := range r.Rolls {
		out = append(out, roll.Results...)
	}
	return out
}

// Source supplies integers in [0, n).
type Source interface {
	IntN(n int) int
}
