package scenario

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/louisbranch/herosheet/internal/session"
)

// heroExpectations read hero values by expectation key.
var heroExpectations = map[string]func(session.Status) any{
	"stamina":         func(s session.Status) any { return s.Stamina.Current },
	"stamina_max":     func(s session.Status) any { return s.Stamina.Max },
	"temporary":       func(s session.Status) any { return s.Stamina.Temporary },
	"dying_threshold": func(s session.Status) any { return s.Stamina.DyingThreshold },
	"winded":          func(s session.Status) any { return s.Stamina.Winded },
	"dying":           func(s session.Status) any { return s.Stamina.Dying },
	"dead":            func(s session.Status) any { return s.Stamina.Dead },
	"condition":       func(s session.Status) any { return s.Stamina.Condition() },
	"recoveries":      func(s session.Status) any { return s.Recoveries.Current },
	"recoveries_max":  func(s session.Status) any { return s.Recoveries.Max },
	"recovery_value":  func(s session.Status) any { return s.Recoveries.Value },
	"heroic":          func(s session.Status) any { return s.Heroic.Current },
	"heroic_name":     func(s session.Status) any { return s.Heroic.Name },
	"level":           func(s session.Status) any { return s.Level },
	"xp":              func(s session.Status) any { return s.XP },
	"xp_to_next":      func(s session.Status) any { return s.XPToNextLevel },
	"can_level_up":    func(s session.Status) any { return s.CanLevelUp },
	"progress":        func(s session.Status) any { return s.ProgressPercent },
}

// sessionExpectations read values that do not need a hero.
var sessionExpectations = map[string]func(*scenarioState) (any, error){
	"changed": func(s *scenarioState) (any, error) { return s.changed, nil },
	"removed": func(s *scenarioState) (any, error) { return s.removed, nil },
	"edge_bane": func(s *scenarioState) (any, error) {
		return s.session.EdgeBane().String(), nil
	},
	"history_size": func(s *scenarioState) (any, error) {
		return len(s.session.RollHistory()), nil
	},
	"unavailable": func(s *scenarioState) (any, error) {
		return s.session.Skills().Unavailable, nil
	},
	"selected_count": func(s *scenarioState) (any, error) {
		return len(s.session.Skills().Selected), nil
	},
	"granted_count": func(s *scenarioState) (any, error) {
		return len(s.session.Skills().Granted), nil
	},
	"last_roll_total":     lastRoll(func(s *scenarioState) any { return s.roll.FinalTotal }),
	"last_roll_raw":       lastRoll(func(s *scenarioState) any { return s.roll.RawTotal }),
	"last_roll_tier":      lastRoll(func(s *scenarioState) any { return s.roll.FinalTier }),
	"last_roll_base_tier": lastRoll(func(s *scenarioState) any { return s.roll.BaseTier }),
	"last_roll_critical":  lastRoll(func(s *scenarioState) any { return s.roll.Critical }),
	"last_roll_edge_bane": lastRoll(func(s *scenarioState) any { return s.roll.EdgeBane.String() }),
}

func lastRoll(read func(*scenarioState) any) func(*scenarioState) (any, error) {
	return func(s *scenarioState) (any, error) {
		if s.roll == nil {
			return nil, fmt.Errorf("no roll has been made")
		}
		return read(s), nil
	}
}

func (r *Runner) runExpectStep(state *scenarioState, args map[string]any) error {
	if len(args) == 0 {
		return r.failf("expect needs at least one key")
	}

	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var status *session.Status
	for _, key := range keys {
		want := args[key]
		var got any
		switch {
		case heroExpectations[key] != nil:
			if status == nil {
				if !state.session.HasHero() {
					return r.failf("expect %s requires a hero", key)
				}
				current := state.session.Status()
				status = &current
			}
			got = heroExpectations[key](*status)
		case sessionExpectations[key] != nil:
			value, err := sessionExpectations[key](state)
			if err != nil {
				return r.failf("expect %s: %v", key, err)
			}
			got = value
		default:
			return r.failf("unknown expectation %q", key)
		}

		if !matches(want, got) {
			if err := r.assertf("expect %s = %v, got %v", key, want, got); err != nil {
				return err
			}
			continue
		}
		r.logf("  expect %s = %v", key, want)
	}
	return nil
}

// matches compares a Lua value against a Go value of the expected kind.
func matches(want, got any) bool {
	switch g := got.(type) {
	case int:
		w, ok := toInt(want)
		return ok && w == g
	case bool:
		w, ok := want.(bool)
		return ok && w == g
	case string:
		w, ok := want.(string)
		return ok && strings.EqualFold(strings.TrimSpace(w), g)
	case []string:
		items, ok := want.([]any)
		if !ok {
			// An empty Lua table decodes as a map.
			m, isMap := want.(map[string]any)
			return isMap && len(m) == 0 && len(g) == 0
		}
		w := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return false
			}
			w = append(w, strings.TrimSpace(s))
		}
		sort.Strings(w)
		return slices.Equal(w, g)
	default:
		return false
	}
}
