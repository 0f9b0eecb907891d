package session

import "github.com/louisbranch/herosheet/internal/systems/drawsteel"

// Status is a read-only snapshot of a hero with its derived values.
type Status struct {
	ID              string
	Name            string
	Class           drawsteel.Class
	Subclass        string
	Level           int
	XP              int
	XPToNextLevel   int
	ProgressPercent int
	CanLevelUp      bool
	Stamina         StaminaStatus
	Recoveries      RecoveriesStatus
	Heroic          HeroicStatus
}

// StaminaStatus is a snapshot of stamina with derived conditions.
type StaminaStatus struct {
	Current         int
	Max             int
	Temporary       int
	WindedThreshold int
	DyingThreshold  int
	DeathThreshold  int
	WindedOverride  bool
	DyingOverride   bool
	Winded          bool
	Dying           bool
	Dead            bool
}

// RecoveriesStatus is a snapshot of recoveries.
type RecoveriesStatus struct {
	Current int
	Max     int
	Value   int
}

// HeroicStatus is a snapshot of the heroic resource with its class display
// fields.
type HeroicStatus struct {
	Name           string
	Abbreviation   string
	ColorToken     string
	Characteristic drawsteel.Characteristic
	Current        int
	Min            int
	Max            int
}

func statusOf(h *drawsteel.Hero) Status {
	cfg := h.ClassConfig()
	st := h.Resources().Stamina()
	rec := h.Resources().Recoveries()
	heroic := h.Resources().Heroic()
	return Status{
		ID:              h.ID(),
		Name:            h.Name(),
		Class:           h.Class(),
		Subclass:        h.Subclass(),
		Level:           h.Level(),
		XP:              h.XP(),
		XPToNextLevel:   drawsteel.XPToNextLevel(h.Level(), h.XP()),
		ProgressPercent: drawsteel.LevelProgressPercent(h.Level(), h.XP()),
		CanLevelUp:      drawsteel.CanLevelUp(h.Level(), h.XP()),
		Stamina: StaminaStatus{
			Current:         st.Current(),
			Max:             st.Max(),
			Temporary:       st.Temporary(),
			WindedThreshold: st.WindedThreshold(),
			DyingThreshold:  st.DyingThreshold(),
			DeathThreshold:  st.DeathThreshold(),
			WindedOverride:  st.WindedOverride(),
			DyingOverride:   st.DyingOverride(),
			Winded:          st.IsWinded(),
			Dying:           st.IsDying(),
			Dead:            st.IsDead(),
		},
		Recoveries: RecoveriesStatus{
			Current: rec.Current(),
			Max:     rec.Max(),
			Value:   rec.Value(),
		},
		Heroic: HeroicStatus{
			Name:           cfg.Name,
			Abbreviation:   cfg.Abbreviation,
			ColorToken:     cfg.ColorToken,
			Characteristic: cfg.Characteristic,
			Current:        heroic.Current(),
			Min:            heroic.Min(),
			Max:            heroic.Max(),
		},
	}
}

// Condition returns the label key for the most severe stamina condition.
func (s StaminaStatus) Condition() string {
	switch {
	case s.Dead:
		return "dead"
	case s.Dying:
		return "dying"
	case s.Winded:
		return "winded"
	default:
		return "healthy"
	}
}
