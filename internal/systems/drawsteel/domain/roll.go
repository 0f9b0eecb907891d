package domain

import (
	"time"

	"github.com/louisbranch/herosheet/internal/core/check"
)

// Tier thresholds for power rolls.
const (
	Tier2Threshold = 12
	Tier3Threshold = 17
)

// Tiers is the number of power roll tiers.
const Tiers = 3

// PowerRollSides is the die size of a power roll.
const PowerRollSides = 10

// RollKind distinguishes power rolls from single-die rolls.
type RollKind int

const (
	RollKindPower RollKind = iota + 1
	RollKindDie
)

// String returns the wire name of the kind.
func (k RollKind) String() string {
	switch k {
	case RollKindPower:
		return "power"
	case RollKindDie:
		return "die"
	default:
		return "unknown"
	}
}

// DiceRoll is an immutable record of a resolved roll. Tier fields are zero
// for single-die rolls.
type DiceRoll struct {
	ID             string
	Kind           RollKind
	Sides          int
	Dice           []int
	RawTotal       int
	Modifier       int
	FinalTotal     int
	BaseTier       int
	TierAdjustment int
	FinalTier      int
	EdgeBane       EdgeBane
	Critical       bool
	Label          string
	Timestamp      time.Time
}

// TierOf returns the power roll tier for a total.
func TierOf(total int) int {
	return check.Band(total, Tier2Threshold, Tier3Threshold)
}

// PowerRollOutcome is the result of tiering a power roll.
type PowerRollOutcome struct {
	RawTotal       int
	FinalTotal     int
	BaseTier       int
	TierAdjustment int
	FinalTier      int
	Critical       bool
}

// ResolvePowerRoll tiers known power roll dice. The edge/bane bonus is added
// before tiering and its tier shift applied after, clamped to [1, 3]. Two
// dice summing to 19 or more mark the roll critical.
func ResolvePowerRoll(dice []int, modifier int, state EdgeBane) PowerRollOutcome {
	raw := 0
	for _, v := range dice {
		raw += v
	}
	final := raw + modifier + state.Bonus()
	base := TierOf(final)
	shift := state.TierShift()
	return PowerRollOutcome{
		RawTotal:       raw,
		FinalTotal:     final,
		BaseTier:       base,
		TierAdjustment: shift,
		FinalTier:      check.ShiftBand(base, shift, Tiers),
		Critical:       len(dice) == 2 && raw >= 19,
	}
}
