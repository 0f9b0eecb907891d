package drawsteel

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
)

// DefaultHeroicMax caps a heroic resource when the class sets no ceiling.
const DefaultHeroicMax = 99

// Stamina tracks a hero's stamina and the conditions derived from it.
//
// Current always lies in [DeathThreshold, Max+Temporary].
type Stamina struct {
	current        int
	max            int
	temporary      int
	dyingThreshold int
	windedOverride bool
	dyingOverride  bool
}

// Current returns the current stamina.
func (s *Stamina) Current() int { return s.current }

// Max returns the maximum stamina.
func (s *Stamina) Max() int { return s.max }

// Temporary returns the temporary stamina on top of Max.
func (s *Stamina) Temporary() int { return s.temporary }

// DyingThreshold returns the stamina at or below which the hero is dying.
func (s *Stamina) DyingThreshold() int { return s.dyingThreshold }

// WindedThreshold is half of Max, rounded down.
func (s *Stamina) WindedThreshold() int { return s.max / 2 }

// DeathThreshold is the negative of half of Max, rounded down. It is also the
// lowest value current stamina can reach.
func (s *Stamina) DeathThreshold() int { return -(s.max / 2) }

// WindedOverride reports whether winded was set manually.
func (s *Stamina) WindedOverride() bool { return s.windedOverride }

// DyingOverride reports whether dying was set manually.
func (s *Stamina) DyingOverride() bool { return s.dyingOverride }

// IsWinded reports whether the hero is winded.
func (s *Stamina) IsWinded() bool {
	return s.windedOverride || s.current <= s.WindedThreshold()
}

// IsDying reports whether the hero is dying.
func (s *Stamina) IsDying() bool {
	return s.dyingOverride || s.current <= s.dyingThreshold
}

// IsDead reports whether the hero has reached the death threshold.
func (s *Stamina) IsDead() bool {
	return s.current <= s.DeathThreshold()
}

func (s *Stamina) clamp(value int) int {
	return min(max(value, s.DeathThreshold()), s.max+s.temporary)
}

// Set replaces current stamina, clamped into bounds.
func (s *Stamina) Set(value int) bool {
	next := s.clamp(value)
	if next == s.current {
		return false
	}
	s.current = next
	return true
}

// Adjust applies damage (negative delta) or healing (positive delta).
// Healing never raises current above Max and never lowers a current already
// above Max.
func (s *Stamina) Adjust(delta int) bool {
	if delta >= 0 {
		return s.heal(delta)
	}
	return s.Set(s.current + delta)
}

func (s *Stamina) heal(amount int) bool {
	if amount <= 0 {
		return false
	}
	return s.Set(max(s.current, min(s.current+amount, s.max)))
}

// SetMax changes maximum stamina. Values below 1 are ignored.
func (s *Stamina) SetMax(value int) bool {
	if value < 1 || value == s.max {
		return false
	}
	s.max = value
	s.current = s.clamp(s.current)
	return true
}

// SetTemporary changes temporary stamina. Negative values are ignored.
func (s *Stamina) SetTemporary(value int) bool {
	if value < 0 || value == s.temporary {
		return false
	}
	s.temporary = value
	s.current = s.clamp(s.current)
	return true
}

// SetDyingThreshold changes the stamina at or below which the hero is dying.
func (s *Stamina) SetDyingThreshold(value int) bool {
	if value == s.dyingThreshold {
		return false
	}
	s.dyingThreshold = value
	return true
}

// ToggleWindedOverride flips the manual winded flag.
func (s *Stamina) ToggleWindedOverride() {
	s.windedOverride = !s.windedOverride
}

// ToggleDyingOverride flips the manual dying flag.
func (s *Stamina) ToggleDyingOverride() {
	s.dyingOverride = !s.dyingOverride
}

// Recoveries tracks the recoveries a hero can spend to regain stamina.
type Recoveries struct {
	current int
	max     int
	value   int
}

// Current returns the remaining recoveries.
func (r *Recoveries) Current() int { return r.current }

// Max returns the maximum recoveries.
func (r *Recoveries) Max() int { return r.max }

// Value returns the stamina regained per recovery.
func (r *Recoveries) Value() int { return r.value }

// Adjust changes remaining recoveries, clamped to [0, Max].
func (r *Recoveries) Adjust(delta int) bool {
	next := min(max(r.current+delta, 0), r.max)
	if next == r.current {
		return false
	}
	r.current = next
	return true
}

// Restore refills recoveries to Max.
func (r *Recoveries) Restore() bool {
	if r.current == r.max {
		return false
	}
	r.current = r.max
	return true
}

// SetMax changes the maximum. Negative values are ignored.
func (r *Recoveries) SetMax(value int) bool {
	if value < 0 || value == r.max {
		return false
	}
	r.max = value
	r.current = min(r.current, r.max)
	return true
}

// SetValue changes the stamina regained per recovery. Negative values are
// ignored.
func (r *Recoveries) SetValue(value int) bool {
	if value < 0 || value == r.value {
		return false
	}
	r.value = value
	return true
}

// HeroicResource is the class-specific resource pool.
type HeroicResource struct {
	current int
	min     int
	max     int
}

// Current returns the current amount.
func (h *HeroicResource) Current() int { return h.current }

// Min returns the class floor.
func (h *HeroicResource) Min() int { return h.min }

// Max returns the ceiling.
func (h *HeroicResource) Max() int { return h.max }

// Set replaces the current amount, clamped to [Min, Max].
func (h *HeroicResource) Set(value int) bool {
	next := min(max(value, h.min), h.max)
	if next == h.current {
		return false
	}
	h.current = next
	return true
}

// Adjust changes the current amount, clamped to [Min, Max].
func (h *HeroicResource) Adjust(delta int) bool {
	return h.Set(h.current + delta)
}

// SetMax changes the ceiling. Values below Min are ignored.
func (h *HeroicResource) SetMax(value int) bool {
	if value < h.min || value == h.max {
		return false
	}
	h.max = value
	h.current = min(h.current, h.max)
	return true
}

// Condition names a manually toggled stamina condition.
type Condition string

const (
	ConditionWinded Condition = "winded"
	ConditionDying  Condition = "dying"
)

// ParseCondition resolves a condition name.
func ParseCondition(value string) (Condition, error) {
	switch condition := Condition(strings.ToLower(strings.TrimSpace(value))); condition {
	case ConditionWinded, ConditionDying:
		return condition, nil
	default:
		return "", apperrors.WithMetadata(
			apperrors.CodeStatusUnknownCondition,
			fmt.Sprintf("unknown condition %q", value),
			map[string]string{"Condition": value},
		)
	}
}

// Resources is the bounded resource state owned by one hero.
type Resources struct {
	stamina    Stamina
	recoveries Recoveries
	heroic     HeroicResource
}

// ResourcesConfig contains the values for creating Resources. Out-of-range
// values are clamped.
type ResourcesConfig struct {
	StaminaCurrent    int
	StaminaMax        int
	StaminaTemporary  int
	DyingThreshold    int
	WindedOverride    bool
	DyingOverride     bool
	RecoveriesCurrent int
	RecoveriesMax     int
	RecoveryValue     int
	HeroicCurrent     int
	HeroicMin         int
	HeroicMax         int
}

// NewResources creates resource state from cfg.
func NewResources(cfg ResourcesConfig) *Resources {
	r := &Resources{
		stamina: Stamina{
			max:            max(cfg.StaminaMax, 1),
			temporary:      max(cfg.StaminaTemporary, 0),
			dyingThreshold: cfg.DyingThreshold,
			windedOverride: cfg.WindedOverride,
			dyingOverride:  cfg.DyingOverride,
		},
		recoveries: Recoveries{
			max:   max(cfg.RecoveriesMax, 0),
			value: max(cfg.RecoveryValue, 0),
		},
		heroic: HeroicResource{
			min: cfg.HeroicMin,
			max: max(cfg.HeroicMax, cfg.HeroicMin),
		},
	}
	r.stamina.current = r.stamina.clamp(cfg.StaminaCurrent)
	r.recoveries.current = min(max(cfg.RecoveriesCurrent, 0), r.recoveries.max)
	r.heroic.current = min(max(cfg.HeroicCurrent, r.heroic.min), r.heroic.max)
	return r
}

// Stamina returns the stamina state.
func (r *Resources) Stamina() *Stamina { return &r.stamina }

// Recoveries returns the recovery state.
func (r *Resources) Recoveries() *Recoveries { return &r.recoveries }

// Heroic returns the heroic resource state.
func (r *Resources) Heroic() *HeroicResource { return &r.heroic }

// UseRecovery spends one recovery to regain its value in stamina, capped at
// max stamina. It does nothing when no recoveries remain.
func (r *Resources) UseRecovery() bool {
	if r.recoveries.current <= 0 {
		return false
	}
	r.recoveries.current--
	r.stamina.heal(r.recoveries.value)
	return true
}

// Respite restores every recovery and resets the heroic resource to zero.
func (r *Resources) Respite() bool {
	restored := r.recoveries.Restore()
	reset := r.heroic.Set(0)
	return restored || reset
}

// ToggleCondition flips the manual flag for condition. It panics on a
// condition that ParseCondition would reject.
func (r *Resources) ToggleCondition(condition Condition) {
	switch condition {
	case ConditionWinded:
		r.stamina.ToggleWindedOverride()
	case ConditionDying:
		r.stamina.ToggleDyingOverride()
	default:
		panic(fmt.Sprintf("drawsteel: unknown condition %q", condition))
	}
}
