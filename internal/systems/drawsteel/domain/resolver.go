package domain

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/louisbranch/herosheet/internal/core/dice"
	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
	"github.com/louisbranch/herosheet/internal/platform/id"
)

// HistoryCap is the number of rolls a Resolver retains.
const HistoryCap = 50

// Resolver rolls dice, tiers power rolls and keeps a newest-first history.
// It is not safe for concurrent use.
type Resolver struct {
	source   dice.Source
	now      func() time.Time
	newID    func() (string, error)
	seq      int
	edgeBane EdgeBane
	history  []DiceRoll
}

// ResolverConfig contains the collaborators for a Resolver. Only Source is
// required.
type ResolverConfig struct {
	Source dice.Source
	// Clock defaults to time.Now.
	Clock func() time.Time
	// NewID defaults to id.NewID.
	NewID func() (string, error)
}

// NewResolver creates a resolver with a normal default edge/bane state. It
// panics when cfg.Source is nil.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Source == nil {
		panic("domain: resolver requires a dice source")
	}
	r := &Resolver{
		source:   cfg.Source,
		now:      cfg.Clock,
		newID:    cfg.NewID,
		edgeBane: EdgeBaneNormal,
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = id.NewID
	}
	return r
}

// EdgeBane returns the default state used by rolls that do not name one.
func (r *Resolver) EdgeBane() EdgeBane {
	return r.edgeBane
}

// SetEdgeBane replaces the default state. EdgeBaneUnspecified resets it to
// normal.
func (r *Resolver) SetEdgeBane(state EdgeBane) {
	if state == EdgeBaneUnspecified {
		state = EdgeBaneNormal
	}
	r.edgeBane = state
}

// CycleEdgeBane advances the default state and returns it.
func (r *Resolver) CycleEdgeBane() EdgeBane {
	r.edgeBane = r.edgeBane.Next()
	return r.edgeBane
}

// PowerRollRequest describes a power roll.
type PowerRollRequest struct {
	Modifier int
	// EdgeBane defaults to the resolver state when unspecified.
	EdgeBane EdgeBane
	Label    string
}

// PowerRoll rolls 2d10, tiers the total and records the roll.
func (r *Resolver) PowerRoll(req PowerRollRequest) DiceRoll {
	result, err := dice.RollDice(r.source, []dice.Spec{{Sides: PowerRollSides, Count: 2}})
	if err != nil {
		// 2d10 is always a valid dice.Spec.
		panic(err)
	}

	state := req.EdgeBane
	if state == EdgeBaneUnspecified {
		state = r.edgeBane
	}
	values := result.Values()
	outcome := ResolvePowerRoll(values, req.Modifier, state)
	return r.record(DiceRoll{
		Kind:           RollKindPower,
		Sides:          PowerRollSides,
		Dice:           values,
		RawTotal:       outcome.RawTotal,
		Modifier:       req.Modifier,
		FinalTotal:     outcome.FinalTotal,
		BaseTier:       outcome.BaseTier,
		TierAdjustment: outcome.TierAdjustment,
		FinalTier:      outcome.FinalTier,
		EdgeBane:       state,
		Critical:       outcome.Critical,
		Label:          req.Label,
	})
}

// DieRollRequest describes a single-die roll.
type DieRollRequest struct {
	Sides    int
	Modifier int
	Label    string
}

// RollDie rolls one die with no tiering. Edge and bane do not apply.
func (r *Resolver) RollDie(req DieRollRequest) (DiceRoll, error) {
	if req.Sides < 2 {
		return DiceRoll{}, apperrors.WithMetadata(
			apperrors.CodeRollInvalidDie,
			fmt.Sprintf("die needs at least two sides, got %d", req.Sides),
			map[string]string{"Sides": strconv.Itoa(req.Sides)},
		)
	}
	value := dice.RollDie(r.source, req.Sides)
	return r.record(DiceRoll{
		Kind:       RollKindDie,
		Sides:      req.Sides,
		Dice:       []int{value},
		RawTotal:   value,
		Modifier:   req.Modifier,
		FinalTotal: value + req.Modifier,
		EdgeBane:   EdgeBaneNormal,
		Label:      req.Label,
	}), nil
}

func (r *Resolver) record(roll DiceRoll) DiceRoll {
	r.seq++
	rollID, err := r.newID()
	if err != nil || rollID == "" {
		rollID = "roll-" + strconv.Itoa(r.seq)
	}
	roll.ID = rollID
	roll.Timestamp = r.now()

	// Prepend and drop the oldest entries past the cap.
	r.history = append(r.history, DiceRoll{})
	copy(r.history[1:], r.history)
	r.history[0] = roll
	if len(r.history) > HistoryCap {
		r.history = r.history[:HistoryCap]
	}
	return roll
}

// History returns the retained rolls, newest first.
func (r *Resolver) History() []DiceRoll {
	out := make([]DiceRoll, len(r.history))
	for i, roll := range r.history {
		roll.Dice = slices.Clone(roll.Dice)
		out[i] = roll
	}
	return out
}

// ClearHistory discards every retained roll.
func (r *Resolver) ClearHistory() {
	r.history = nil
}
