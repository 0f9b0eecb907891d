package random

import "testing"

func TestNewSeedVaries(t *testing.T) {
	first, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	second, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct seeds, got %d twice", first)
	}
}

func TestNewSourceIsDeterministic(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := range 100 {
		x, y := a.IntN(10), b.IntN(10)
		if x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
		if x < 0 || x >= 10 {
			t.Fatalf("draw %d out of range: %d", i, x)
		}
	}
	if a.Seed() != 42 {
		t.Fatalf("Seed() = %d, want 42", a.Seed())
	}
}

func TestNewSourceDiffersBySeed(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)
	same := true
	for range 32 {
		if a.IntN(1000) != b.IntN(1000) {
			same = false
		}
	}
	if same {
		t.Fatal("expected different sequences for different seeds")
	}
}
