package drawsteel

// Level bounds.
const (
	MinLevel = 1
	MaxLevel = 10
)

// XPPerLevel is the experience needed between consecutive levels.
const XPPerLevel = 16

// xpThresholds[i] is the total experience required to reach level i+1.
var xpThresholds = [MaxLevel]int{0, 16, 32, 48, 64, 80, 96, 112, 128, 144}

// XPForLevel returns the total experience required to reach level. Levels
// below 1 use level 1 and levels above 10 use level 10.
func XPForLevel(level int) int {
	return xpThresholds[min(max(level, MinLevel), MaxLevel)-1]
}

// XPToNextLevel returns the experience still needed to reach the next level,
// or 0 at the final level.
func XPToNextLevel(level, xp int) int {
	if level >= MaxLevel {
		return 0
	}
	return max(0, XPForLevel(level+1)-xp)
}

// LevelProgressPercent returns how far xp is between the current and next
// level thresholds, in [0, 100]. The final level always reports 100.
func LevelProgressPercent(level, xp int) int {
	if level >= MaxLevel {
		return 100
	}
	floor := XPForLevel(level)
	span := XPForLevel(level+1) - floor
	if span <= 0 {
		return 100
	}
	return min(max(100*(xp-floor)/span, 0), 100)
}

// CanLevelUp reports whether xp is enough to advance past level.
func CanLevelUp(level, xp int) bool {
	return level < MaxLevel && xp >= XPForLevel(level+1)
}

// Formulas computes health values for a hero after its level changes.
type Formulas interface {
	MaxStamina(h *Hero) int
	RecoveryValue(h *Hero) int
	MaxRecoveries(h *Hero) int
}

// FormulaFuncs adapts plain functions to Formulas. A nil field falls back to
// ClassFormulas.
type FormulaFuncs struct {
	MaxStaminaFunc    func(h *Hero) int
	RecoveryValueFunc func(h *Hero) int
	MaxRecoveriesFunc func(h *Hero) int
}

// MaxStamina implements Formulas.
func (f FormulaFuncs) MaxStamina(h *Hero) int {
	if f.MaxStaminaFunc == nil {
		return ClassFormulas{}.MaxStamina(h)
	}
	return f.MaxStaminaFunc(h)
}

// RecoveryValue implements Formulas.
func (f FormulaFuncs) RecoveryValue(h *Hero) int {
	if f.RecoveryValueFunc == nil {
		return ClassFormulas{}.RecoveryValue(h)
	}
	return f.RecoveryValueFunc(h)
}

// MaxRecoveries implements Formulas.
func (f FormulaFuncs) MaxRecoveries(h *Hero) int {
	if f.MaxRecoveriesFunc == nil {
		return ClassFormulas{}.MaxRecoveries(h)
	}
	return f.MaxRecoveriesFunc(h)
}

// ClassFormulas derives health values from the class table.
type ClassFormulas struct{}

var _ Formulas = ClassFormulas{}

// MaxStamina is the class starting stamina plus the per-level gain for every
// level after the first.
func (ClassFormulas) MaxStamina(h *Hero) int {
	cfg := MustClassConfig(h.class)
	return cfg.StartingStamina + cfg.StaminaPerLevel*(h.level-1)
}

// RecoveryValue is a third of max stamina, rounded down.
func (c ClassFormulas) RecoveryValue(h *Hero) int {
	return c.MaxStamina(h) / 3
}

// MaxRecoveries is the class recovery count.
func (ClassFormulas) MaxRecoveries(h *Hero) int {
	return MustClassConfig(h.class).Recoveries
}

// LevelUp advances h one level, recomputes its health from formulas and
// fully restores stamina and recoveries. It does nothing at the final level.
// A nil formulas uses ClassFormulas. It panics when h is nil.
func LevelUp(h *Hero, formulas Formulas) bool {
	if h == nil {
		panic("drawsteel: LevelUp called without a hero")
	}
	if h.level >= MaxLevel {
		return false
	}
	if formulas == nil {
		formulas = ClassFormulas{}
	}

	h.level++
	stamina := h.resources.Stamina()
	recoveries := h.resources.Recoveries()
	stamina.SetMax(formulas.MaxStamina(h))
	recoveries.SetValue(formulas.RecoveryValue(h))
	recoveries.SetMax(formulas.MaxRecoveries(h))
	stamina.Set(stamina.Max())
	recoveries.Restore()
	return true
}

// AwardXP adds amount to the hero's experience. Non-positive amounts are
// ignored. It panics when h is nil.
func AwardXP(h *Hero, amount int) bool {
	if h == nil {
		panic("drawsteel: AwardXP called without a hero")
	}
	if amount <= 0 {
		return false
	}
	h.xp += amount
	return true
}
