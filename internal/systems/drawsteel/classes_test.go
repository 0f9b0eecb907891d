package drawsteel

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
)

func TestClassTableHasTenClasses(t *testing.T) {
	classes := Classes()
	if len(classes) != 10 {
		t.Fatalf("Classes() = %d entries, want 10", len(classes))
	}
	for i := 1; i < len(classes); i++ {
		if classes[i-1].Class >= classes[i].Class {
			t.Fatalf("Classes() not sorted at %d: %s >= %s", i, classes[i-1].Class, classes[i].Class)
		}
	}
}

func TestClassResourceFloors(t *testing.T) {
	for _, cfg := range Classes() {
		want := 0
		if cfg.Class == ClassTalent {
			want = -10
		}
		if cfg.MinValue != want {
			t.Errorf("%s min value = %d, want %d", cfg.Class, cfg.MinValue, want)
		}
	}
}

func TestClassResourceNames(t *testing.T) {
	tests := []struct {
		class Class
		name  string
	}{
		{ClassCensor, "Wrath"},
		{ClassConduit, "Piety"},
		{ClassElementalist, "Essence"},
		{ClassFury, "Ferocity"},
		{ClassNull, "Discipline"},
		{ClassShadow, "Insight"},
		{ClassSummoner, "Essence"},
		{ClassTactician, "Focus"},
		{ClassTalent, "Clarity"},
		{ClassTroubadour, "Drama"},
	}
	for _, tt := range tests {
		cfg, ok := ClassConfig(tt.class)
		if !ok {
			t.Fatalf("ClassConfig(%s) missing", tt.class)
		}
		if cfg.Name != tt.name {
			t.Errorf("%s resource = %q, want %q", tt.class, cfg.Name, tt.name)
		}
		if cfg.Abbreviation == "" || cfg.ColorToken == "" || cfg.Characteristic == "" {
			t.Errorf("%s has empty display fields: %+v", tt.class, cfg)
		}
	}
}

func TestParseClass(t *testing.T) {
	class, err := ParseClass("  Talent ")
	if err != nil {
		t.Fatalf("ParseClass: %v", err)
	}
	if class != ClassTalent {
		t.Fatalf("ParseClass = %s, want %s", class, ClassTalent)
	}

	_, err = ParseClass("bard")
	if !apperrors.IsCode(err, apperrors.CodeHeroUnknownClass) {
		t.Fatalf("ParseClass(bard) error = %v, want %s", err, apperrors.CodeHeroUnknownClass)
	}
}

func TestLoadClassesRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed", data: "classes: [\n"},
		{name: "too few", data: "classes:\n  - class: censor\n    resource: {name: Wrath, characteristic: presence}\n    starting_stamina: 21\n"},
		{name: "duplicate", data: "classes:\n  - class: censor\n    resource: {characteristic: might}\n    starting_stamina: 1\n  - class: censor\n    resource: {characteristic: might}\n    starting_stamina: 1\n"},
		{name: "positive floor", data: "classes:\n  - class: censor\n    resource: {min_value: 2, characteristic: might}\n    starting_stamina: 1\n"},
		{name: "bad characteristic", data: "classes:\n  - class: censor\n    resource: {characteristic: luck}\n    starting_stamina: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadClasses([]byte(tt.data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMustClassConfigPanicsOnUnknownClass(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustClassConfig(Class("bard"))
}

func TestParseClassErrorIsDomainError(t *testing.T) {
	_, err := ParseClass("")
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
}
