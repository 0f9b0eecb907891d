package drawsteel

import (
	"math/rand/v2"
	"testing"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
)

func newTestResources(staminaMax, temporary int) *Resources {
	return NewResources(ResourcesConfig{
		StaminaCurrent:    staminaMax,
		StaminaMax:        staminaMax,
		StaminaTemporary:  temporary,
		RecoveriesCurrent: 8,
		RecoveriesMax:     8,
		RecoveryValue:     6,
		HeroicMin:         0,
		HeroicMax:         DefaultHeroicMax,
	})
}

func TestStaminaStaysInBoundsUnderRandomAdjustments(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := range 200 {
		staminaMax := 1 + rng.IntN(60)
		temporary := rng.IntN(15)
		r := newTestResources(staminaMax, temporary)
		r.Stamina().Set(staminaMax + temporary)
		s := r.Stamina()
		for range 50 {
			s.Adjust(rng.IntN(81) - 40)
			if s.Current() < -(staminaMax/2) || s.Current() > staminaMax+temporary {
				t.Fatalf("trial %d: current %d outside [%d, %d]", trial, s.Current(), -(staminaMax / 2), staminaMax+temporary)
			}
		}
	}
}

func TestStaminaDamageScenario(t *testing.T) {
	r := newTestResources(20, 0)
	s := r.Stamina()
	s.SetDyingThreshold(-5)

	s.Adjust(-25)
	if s.Current() != -5 {
		t.Fatalf("current = %d, want -5", s.Current())
	}
	if !s.IsWinded() || !s.IsDying() {
		t.Fatalf("winded=%v dying=%v, want both true", s.IsWinded(), s.IsDying())
	}
	if s.IsDead() {
		t.Fatal("expected alive at -5")
	}

	s.Adjust(-25)
	if s.Current() != -10 {
		t.Fatalf("current = %d, want floor -10", s.Current())
	}
	if s.DeathThreshold() != -10 || !s.IsDead() {
		t.Fatalf("death threshold = %d dead = %v, want -10 and dead", s.DeathThreshold(), s.IsDead())
	}
}

func TestStaminaHealingCaps(t *testing.T) {
	r := newTestResources(20, 5)
	s := r.Stamina()

	s.Set(25)
	if s.Current() != 25 {
		t.Fatalf("current = %d, want 25 with temporary", s.Current())
	}
	if s.Adjust(3) {
		t.Fatal("healing above max should not change stamina")
	}
	if s.Current() != 25 {
		t.Fatalf("current = %d, want 25", s.Current())
	}

	s.Set(15)
	s.Adjust(10)
	if s.Current() != 20 {
		t.Fatalf("current = %d, want healing capped at 20", s.Current())
	}
	s.Set(100)
	if s.Current() != 25 {
		t.Fatalf("Set(100) = %d, want 25", s.Current())
	}
}

func TestStaminaWindedThresholdAndOverride(t *testing.T) {
	tests := []struct {
		current  int
		override bool
		want     bool
	}{
		{current: 11, want: false},
		{current: 10, want: true},
		{current: 0, want: true},
		{current: 11, override: true, want: true},
		{current: 5, override: true, want: true},
	}
	for _, tt := range tests {
		r := newTestResources(21, 0)
		s := r.Stamina()
		s.Set(tt.current)
		if tt.override {
			s.ToggleWindedOverride()
		}
		if got := s.IsWinded(); got != tt.want {
			t.Errorf("IsWinded(current=%d, override=%v) = %v, want %v", tt.current, tt.override, got, tt.want)
		}
	}
}

func TestDyingOverrideNeverSuppresses(t *testing.T) {
	r := newTestResources(20, 0)
	s := r.Stamina()
	s.Set(0)
	if !s.IsDying() {
		t.Fatal("expected dying at 0 with default threshold")
	}
	s.ToggleDyingOverride()
	s.ToggleDyingOverride()
	if !s.IsDying() {
		t.Fatal("override toggled off must not suppress derived dying")
	}
	s.Set(20)
	r.ToggleCondition(ConditionDying)
	if !s.IsDying() || !s.DyingOverride() {
		t.Fatal("expected manual dying at full stamina")
	}
}

func TestStaminaSetMaxReclampsOnlyWhenOutside(t *testing.T) {
	r := newTestResources(30, 0)
	s := r.Stamina()
	s.Set(12)

	s.SetMax(40)
	if s.Current() != 12 {
		t.Fatalf("current = %d, want 12 after raising max", s.Current())
	}
	s.SetMax(10)
	if s.Current() != 10 {
		t.Fatalf("current = %d, want 10 after lowering max", s.Current())
	}
	if s.SetMax(0) || s.Max() != 10 {
		t.Fatalf("SetMax(0) should be ignored, max = %d", s.Max())
	}

	s.Set(-5)
	s.SetMax(4)
	if s.Current() != -2 {
		t.Fatalf("current = %d, want new floor -2", s.Current())
	}
}

func TestStaminaSetTemporary(t *testing.T) {
	r := newTestResources(20, 6)
	s := r.Stamina()
	s.Set(26)
	if s.SetTemporary(-1) {
		t.Fatal("negative temporary should be ignored")
	}
	s.SetTemporary(2)
	if s.Current() != 22 {
		t.Fatalf("current = %d, want 22", s.Current())
	}
}

func TestUseRecovery(t *testing.T) {
	r := newTestResources(20, 0)
	r.Stamina().Set(5)

	if !r.UseRecovery() {
		t.Fatal("expected recovery to be used")
	}
	if r.Stamina().Current() != 11 || r.Recoveries().Current() != 7 {
		t.Fatalf("stamina=%d recoveries=%d, want 11 and 7", r.Stamina().Current(), r.Recoveries().Current())
	}

	r.Stamina().Set(18)
	r.UseRecovery()
	if r.Stamina().Current() != 20 {
		t.Fatalf("stamina = %d, want capped at 20", r.Stamina().Current())
	}

	r.Recoveries().Adjust(-100)
	r.Stamina().Set(3)
	before := *r.Stamina()
	if r.UseRecovery() {
		t.Fatal("expected no-op at zero recoveries")
	}
	if *r.Stamina() != before || r.Recoveries().Current() != 0 {
		t.Fatal("no-op recovery changed state")
	}
}

func TestRecoveriesBounds(t *testing.T) {
	r := newTestResources(20, 0)
	rec := r.Recoveries()
	rec.Adjust(5)
	if rec.Current() != 8 {
		t.Fatalf("current = %d, want capped at 8", rec.Current())
	}
	rec.Adjust(-20)
	if rec.Current() != 0 {
		t.Fatalf("current = %d, want 0", rec.Current())
	}
	if !rec.Restore() || rec.Current() != 8 {
		t.Fatalf("restore = %d, want 8", rec.Current())
	}
	if rec.SetValue(-1) || rec.Value() != 6 {
		t.Fatal("negative recovery value should be ignored")
	}
	if rec.SetMax(-1) {
		t.Fatal("negative recovery max should be ignored")
	}
	rec.SetMax(3)
	if rec.Current() != 3 {
		t.Fatalf("current = %d, want reclamped to 3", rec.Current())
	}
}

func TestHeroicResourceBounds(t *testing.T) {
	r := NewResources(ResourcesConfig{StaminaMax: 18, HeroicMin: -10, HeroicMax: 5})
	h := r.Heroic()
	h.Adjust(-30)
	if h.Current() != -10 {
		t.Fatalf("current = %d, want floor -10", h.Current())
	}
	h.Adjust(100)
	if h.Current() != 5 {
		t.Fatalf("current = %d, want ceiling 5", h.Current())
	}
	if h.SetMax(-11) {
		t.Fatal("max below min should be ignored")
	}
	h.SetMax(2)
	if h.Current() != 2 {
		t.Fatalf("current = %d, want 2", h.Current())
	}
}

func TestRespite(t *testing.T) {
	r := NewResources(ResourcesConfig{StaminaMax: 18, RecoveriesMax: 8, HeroicMin: -10, HeroicMax: 99, HeroicCurrent: -4})
	if !r.Respite() {
		t.Fatal("expected respite to change state")
	}
	if r.Recoveries().Current() != 8 || r.Heroic().Current() != 0 {
		t.Fatalf("recoveries=%d heroic=%d, want 8 and 0", r.Recoveries().Current(), r.Heroic().Current())
	}
	if r.Respite() {
		t.Fatal("second respite should be a no-op")
	}
}

func TestParseCondition(t *testing.T) {
	if c, err := ParseCondition("Winded"); err != nil || c != ConditionWinded {
		t.Fatalf("ParseCondition(Winded) = %q, %v", c, err)
	}
	_, err := ParseCondition("prone")
	if !apperrors.IsCode(err, apperrors.CodeStatusUnknownCondition) {
		t.Fatalf("ParseCondition(prone) error = %v", err)
	}
}

func TestToggleConditionPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	newTestResources(10, 0).ToggleCondition(Condition("prone"))
}
