package skills

import (
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
)

func TestRegisterSelectedIsGloballyExclusive(t *testing.T) {
	r := NewRegistry()
	if !r.RegisterSelected("perception", "skills-1") {
		t.Fatal("expected first selection to register")
	}
	if r.IsAvailable("perception") {
		t.Fatal("perception should be unavailable")
	}
	if r.RegisterSelected("perception", "skills-2") {
		t.Fatal("second selection should be rejected")
	}
	if got := r.Selected(); len(got) != 1 || got[0].Section != "skills-1" {
		t.Fatalf("selected = %+v, want one entry in skills-1", got)
	}
}

func TestRegisterGrantedIsIdempotentPerSection(t *testing.T) {
	r := NewRegistry()
	r.RegisterGranted("climb", SourceAncestry, "ancestry")
	if r.RegisterGranted("climb", SourceAncestry, "ancestry") {
		t.Fatal("duplicate grant should be a no-op")
	}
	if !r.RegisterGranted("climb", SourceKit, "kit") {
		t.Fatal("grant in another section should register")
	}
	if len(r.Granted()) != 2 {
		t.Fatalf("granted = %d, want 2", len(r.Granted()))
	}
}

func TestSourceOfPrefersGranted(t *testing.T) {
	r := NewRegistry()
	r.RegisterSelected("lore", "skills-1")
	r.RegisterGranted("lore", SourceCulture, "culture")

	got, ok := r.SourceOf("lore")
	if !ok || got.Kind != SourceCulture {
		t.Fatalf("SourceOf = %+v, %v; want culture grant", got, ok)
	}
	if _, ok := r.SourceOf("swim"); ok {
		t.Fatal("expected no source for swim")
	}
}

func TestUnregisterSelectedRequiresExactPair(t *testing.T) {
	r := NewRegistry()
	r.RegisterSelected("sneak", "skills-1")
	if r.UnregisterSelected("sneak", "skills-2") {
		t.Fatal("wrong section should not unregister")
	}
	if !r.UnregisterSelected("sneak", "skills-1") {
		t.Fatal("expected unregister")
	}
	if !r.IsAvailable("sneak") {
		t.Fatal("sneak should be available again")
	}
	if !r.RegisterSelected("sneak", "skills-2") {
		t.Fatal("released skill should be selectable again")
	}
}

func TestClearSectionOnlyTouchesSection(t *testing.T) {
	r := NewRegistry()
	r.RegisterGranted("climb", SourceCulture, "skills-1")
	r.RegisterSelected("perception", "skills-1")
	r.RegisterSelected("sneak", "skills-2")
	r.RegisterGranted("lore", SourceCareer, "skills-2")

	if removed := r.ClearSection("skills-1"); removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if !r.IsAvailable("climb") || !r.IsAvailable("perception") {
		t.Fatal("skills-1 entries should be cleared")
	}
	if r.IsAvailable("sneak") || r.IsAvailable("lore") {
		t.Fatal("skills-2 entries should remain")
	}
}

func TestClearSourceKind(t *testing.T) {
	r := NewRegistry()
	r.RegisterGranted("climb", SourceCulture, "culture")
	r.RegisterGranted("lore", SourceCareer, "career")
	r.RegisterSelected("sneak", "skills-1")

	r.ClearSourceKind(SourceUserSelected)
	if !r.IsAvailable("sneak") || r.IsAvailable("climb") {
		t.Fatal("only user selections should be cleared")
	}
	r.ClearSourceKind(SourceCulture)
	if got := r.Unavailable(); !reflect.DeepEqual(got, []string{"lore"}) {
		t.Fatalf("unavailable = %v, want [lore]", got)
	}
}

func TestResetAllAndSnapshots(t *testing.T) {
	r := NewRegistry()
	r.RegisterGranted("climb", SourceAncestry, "ancestry")
	r.RegisterSelected("alertness", "skills-1")
	r.RegisterSelected("brag", "skills-2")

	if got := r.Unavailable(); !reflect.DeepEqual(got, []string{"alertness", "brag", "climb"}) {
		t.Fatalf("unavailable = %v", got)
	}
	if got := r.SelectedIn("skills-2"); len(got) != 1 || got[0].SkillID != "brag" {
		t.Fatalf("SelectedIn = %+v", got)
	}

	snapshot := r.Granted()
	snapshot[0].SkillID = "mutated"
	if r.Granted()[0].SkillID != "climb" {
		t.Fatal("snapshots must not alias registry state")
	}

	r.ResetAll()
	if len(r.Granted()) != 0 || len(r.Selected()) != 0 || len(r.Unavailable()) != 0 {
		t.Fatal("expected empty registry")
	}
}

func TestRegisterGrantedPanicsForUserSelected(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewRegistry().RegisterGranted("climb", SourceUserSelected, "skills-1")
}

func TestParseSourceKind(t *testing.T) {
	tests := []struct {
		in   string
		want SourceKind
	}{
		{"ancestry", SourceAncestry},
		{"Complication", SourceComplication},
		{"user-selected", SourceUserSelected},
		{"user", SourceUserSelected},
	}
	for _, tt := range tests {
		got, err := ParseSourceKind(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseSourceKind(%q) = %s, %v; want %s", tt.in, got, err, tt.want)
		}
	}
	_, err := ParseSourceKind("deity")
	if !apperrors.IsCode(err, apperrors.CodeSkillUnknownSource) {
		t.Fatalf("ParseSourceKind(deity) error = %v", err)
	}
}
