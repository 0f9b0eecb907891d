// Package drawsteel models a Draw Steel hero: class resource table, bounded
// stamina, recoveries and heroic resource state, and level progression.
package drawsteel

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
)

// Hero is a hero record mutated only through its resources and the
// progression functions.
type Hero struct {
	id        string
	name      string
	class     Class
	subclass  string
	level     int
	xp        int
	resources *Resources
}

// HeroConfig contains the configuration for creating a new hero.
type HeroConfig struct {
	ID       string
	Name     string
	Class    Class
	Subclass string
	// Level defaults to 1.
	Level int
	XP    int
}

// NewHero creates a hero at full stamina and recoveries with its health
// computed by formulas. A nil formulas uses ClassFormulas.
func NewHero(cfg HeroConfig, formulas Formulas) (*Hero, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeHeroNameEmpty, "hero name is required")
	}
	classCfg, ok := ClassConfig(cfg.Class)
	if !ok {
		return nil, apperrors.WithMetadata(
			apperrors.CodeHeroUnknownClass,
			fmt.Sprintf("unknown class %q", cfg.Class),
			map[string]string{"Class": string(cfg.Class)},
		)
	}
	if formulas == nil {
		formulas = ClassFormulas{}
	}

	h := &Hero{
		id:       cfg.ID,
		name:     name,
		class:    cfg.Class,
		subclass: strings.TrimSpace(cfg.Subclass),
		level:    min(max(cfg.Level, MinLevel), MaxLevel),
		xp:       max(cfg.XP, 0),
	}
	staminaMax := formulas.MaxStamina(h)
	recoveriesMax := formulas.MaxRecoveries(h)
	h.resources = NewResources(ResourcesConfig{
		StaminaCurrent:    staminaMax,
		StaminaMax:        staminaMax,
		RecoveriesCurrent: recoveriesMax,
		RecoveriesMax:     recoveriesMax,
		RecoveryValue:     formulas.RecoveryValue(h),
		HeroicMin:         classCfg.MinValue,
		HeroicMax:         DefaultHeroicMax,
	})
	return h, nil
}

// ID returns the hero id.
func (h *Hero) ID() string { return h.id }

// Name returns the hero name.
func (h *Hero) Name() string { return h.name }

// Class returns the hero class.
func (h *Hero) Class() Class { return h.class }

// Subclass returns the hero subclass, which may be empty.
func (h *Hero) Subclass() string { return h.subclass }

// Level returns the hero level.
func (h *Hero) Level() int { return h.level }

// XP returns the hero's total experience.
func (h *Hero) XP() int { return h.xp }

// Resources returns the hero's resource state.
func (h *Hero) Resources() *Resources { return h.resources }

// ClassConfig returns the class resource config for the hero.
func (h *Hero) ClassConfig() ClassResourceConfig {
	return MustClassConfig(h.class)
}

// HeroRecord is the flat persisted form of a hero.
type HeroRecord struct {
	ID                string
	Name              string
	Class             string
	Subclass          string
	Level             int
	XP                int
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
	HeroicMax         int
}

// Record returns the persisted form of h.
func (h *Hero) Record() HeroRecord {
	s, r, hr := h.resources.Stamina(), h.resources.Recoveries(), h.resources.Heroic()
	return HeroRecord{
		ID:                h.id,
		Name:              h.name,
		Class:             string(h.class),
		Subclass:          h.subclass,
		Level:             h.level,
		XP:                h.xp,
		StaminaCurrent:    s.Current(),
		StaminaMax:        s.Max(),
		StaminaTemporary:  s.Temporary(),
		DyingThreshold:    s.DyingThreshold(),
		WindedOverride:    s.WindedOverride(),
		DyingOverride:     s.DyingOverride(),
		RecoveriesCurrent: r.Current(),
		RecoveriesMax:     r.Max(),
		RecoveryValue:     r.Value(),
		HeroicCurrent:     hr.Current(),
		HeroicMax:         hr.Max(),
	}
}

// HeroFromRecord rebuilds a hero from its persisted form. A record whose
// values fall outside their bounds is rejected rather than clamped.
func HeroFromRecord(rec HeroRecord) (*Hero, error) {
	invalid := func(reason string) error {
		return apperrors.WithMetadata(
			apperrors.CodeHeroInvalidRecord,
			fmt.Sprintf("invalid hero record %q: %s", rec.ID, reason),
			map[string]string{"Reason": reason},
		)
	}

	classCfg, ok := ClassConfig(Class(rec.Class))
	switch {
	case !ok:
		return nil, invalid(fmt.Sprintf("unknown class %q", rec.Class))
	case strings.TrimSpace(rec.Name) == "":
		return nil, invalid("empty name")
	case rec.Level < MinLevel || rec.Level > MaxLevel:
		return nil, invalid(fmt.Sprintf("level %d out of range", rec.Level))
	case rec.XP < 0:
		return nil, invalid("negative xp")
	case rec.StaminaMax < 1 || rec.StaminaTemporary < 0:
		return nil, invalid("stamina bounds")
	case rec.StaminaCurrent < -(rec.StaminaMax/2) || rec.StaminaCurrent > rec.StaminaMax+rec.StaminaTemporary:
		return nil, invalid(fmt.Sprintf("stamina %d out of range", rec.StaminaCurrent))
	case rec.RecoveriesMax < 0 || rec.RecoveryValue < 0:
		return nil, invalid("recovery bounds")
	case rec.RecoveriesCurrent < 0 || rec.RecoveriesCurrent > rec.RecoveriesMax:
		return nil, invalid(fmt.Sprintf("recoveries %d out of range", rec.RecoveriesCurrent))
	case rec.HeroicMax < classCfg.MinValue:
		return nil, invalid("heroic resource bounds")
	case rec.HeroicCurrent < classCfg.MinValue || rec.HeroicCurrent > rec.HeroicMax:
		return nil, invalid(fmt.Sprintf("heroic resource %d out of range", rec.HeroicCurrent))
	}

	return &Hero{
		id:       rec.ID,
		name:     rec.Name,
		class:    classCfg.Class,
		subclass: rec.Subclass,
		level:    rec.Level,
		xp:       rec.XP,
		resources: NewResources(ResourcesConfig{
			StaminaCurrent:    rec.StaminaCurrent,
			StaminaMax:        rec.StaminaMax,
			StaminaTemporary:  rec.StaminaTemporary,
			DyingThreshold:    rec.DyingThreshold,
			WindedOverride:    rec.WindedOverride,
			DyingOverride:     rec.DyingOverride,
			RecoveriesCurrent: rec.RecoveriesCurrent,
			RecoveriesMax:     rec.RecoveriesMax,
			RecoveryValue:     rec.RecoveryValue,
			HeroicCurrent:     rec.HeroicCurrent,
			HeroicMin:         classCfg.MinValue,
			HeroicMax:         rec.HeroicMax,
		}),
	}, nil
}
