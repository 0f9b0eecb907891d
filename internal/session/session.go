// Package session owns the hero, roll resolver and skill registry for one
// editing session and serializes every operation on them.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/herosheet/internal/core/dice"
	"github.com/louisbranch/herosheet/internal/platform/id"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel/domain"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel/skills"
)

// Session is a mutex-guarded owner of one hero and its session-scoped
// collaborators. Hero operations panic when no hero is active; callers check
// HasHero first.
type Session struct {
	mu       sync.Mutex
	hero     *drawsteel.Hero
	formulas drawsteel.Formulas
	resolver *domain.Resolver
	registry *skills.Registry
	newID    func() (string, error)
}

// Config contains the collaborators for a Session. Only Source is required.
type Config struct {
	Source dice.Source
	// Formulas defaults to drawsteel.ClassFormulas.
	Formulas drawsteel.Formulas
	Clock    func() time.Time
	// NewID defaults to id.NewID and names heroes and rolls.
	NewID func() (string, error)
}

// New creates a session without an active hero.
func New(cfg Config) *Session {
	if cfg.Formulas == nil {
		cfg.Formulas = drawsteel.ClassFormulas{}
	}
	if cfg.NewID == nil {
		cfg.NewID = id.NewID
	}
	return &Session{
		formulas: cfg.Formulas,
		resolver: domain.NewResolver(domain.ResolverConfig{
			Source: cfg.Source,
			Clock:  cfg.Clock,
			NewID:  cfg.NewID,
		}),
		registry: skills.NewRegistry(),
		newID:    cfg.NewID,
	}
}

// HasHero reports whether a hero is active.
func (s *Session) HasHero() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hero != nil
}

// CreateHero makes a new hero active and resets the skill registry.
func (s *Session) CreateHero(cfg drawsteel.HeroConfig) (Status, error) {
	if cfg.ID == "" {
		heroID, err := s.newID()
		if err != nil {
			return Status{}, fmt.Errorf("create hero id: %w", err)
		}
		cfg.ID = heroID
	}
	hero, err := drawsteel.NewHero(cfg, s.formulas)
	if err != nil {
		return Status{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hero = hero
	s.registry.ResetAll()
	return statusOf(hero), nil
}

// LoadHero makes a hero rebuilt from rec active and resets the skill
// registry.
func (s *Session) LoadHero(rec drawsteel.HeroRecord) (Status, error) {
	hero, err := drawsteel.HeroFromRecord(rec)
	if err != nil {
		return Status{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hero = hero
	s.registry.ResetAll()
	return statusOf(hero), nil
}

// Record returns the persisted form of the active hero.
func (s *Session) Record() drawsteel.HeroRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeHero().Record()
}

// Status returns a snapshot of the active hero.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statusOf(s.activeHero())
}

func (s *Session) activeHero() *drawsteel.Hero {
	if s.hero == nil {
		panic("session: no active hero")
	}
	return s.hero
}

// mutate runs fn against the active hero and returns whether it changed
// state along with the resulting snapshot.
func (s *Session) mutate(fn func(h *drawsteel.Hero) bool) (bool, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hero := s.activeHero()
	changed := fn(hero)
	return changed, statusOf(hero)
}

// AdjustStamina applies damage or healing.
func (s *Session) AdjustStamina(delta int) (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().Stamina().Adjust(delta) })
}

// SetStamina replaces current stamina.
func (s *Session) SetStamina(value int) (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().Stamina().Set(value) })
}

// SetStaminaMax replaces max stamina.
func (s *Session) SetStaminaMax(value int) (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().Stamina().SetMax(value) })
}

// SetTemporaryStamina replaces temporary stamina.
func (s *Session) SetTemporaryStamina(value int) (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().Stamina().SetTemporary(value) })
}

// SetDyingThreshold replaces the dying threshold.
func (s *Session) SetDyingThreshold(value int) (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().Stamina().SetDyingThreshold(value) })
}

// ToggleCondition flips a manual condition.
func (s *Session) ToggleCondition(condition drawsteel.Condition) Status {
	_, status := s.mutate(func(h *drawsteel.Hero) bool {
		h.Resources().ToggleCondition(condition)
		return true
	})
	return status
}

// UseRecovery spends one recovery.
func (s *Session) UseRecovery() (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().UseRecovery() })
}

// AdjustRecoveries changes remaining recoveries.
func (s *Session) AdjustRecoveries(delta int) (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().Recoveries().Adjust(delta) })
}

// RestoreRecoveries refills recoveries.
func (s *Session) RestoreRecoveries() (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().Recoveries().Restore() })
}

// Respite restores recoveries and resets the heroic resource.
func (s *Session) Respite() (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().Respite() })
}

// AdjustHeroic changes the heroic resource.
func (s *Session) AdjustHeroic(delta int) (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return h.Resources().Heroic().Adjust(delta) })
}

// AwardXP adds experience.
func (s *Session) AwardXP(amount int) (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return drawsteel.AwardXP(h, amount) })
}

// LevelUp advances the hero one level using the session formulas.
func (s *Session) LevelUp() (bool, Status) {
	return s.mutate(func(h *drawsteel.Hero) bool { return drawsteel.LevelUp(h, s.formulas) })
}

// PowerRoll rolls and records a power roll.
func (s *Session) PowerRoll(req domain.PowerRollRequest) domain.DiceRoll {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.PowerRoll(req)
}

// RollDie rolls and records a single die.
func (s *Session) RollDie(req domain.DieRollRequest) (domain.DiceRoll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.RollDie(req)
}

// EdgeBane returns the default edge/bane state.
func (s *Session) EdgeBane() domain.EdgeBane {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.EdgeBane()
}

// SetEdgeBane replaces the default edge/bane state.
func (s *Session) SetEdgeBane(state domain.EdgeBane) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver.SetEdgeBane(state)
}

// CycleEdgeBane advances the default edge/bane state.
func (s *Session) CycleEdgeBane() domain.EdgeBane {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.CycleEdgeBane()
}

// RollHistory returns retained rolls, newest first.
func (s *Session) RollHistory() []domain.DiceRoll {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.History()
}

// ClearRollHistory discards retained rolls.
func (s *Session) ClearRollHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver.ClearHistory()
}
