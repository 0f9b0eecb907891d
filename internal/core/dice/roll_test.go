package dice

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestRollDiceValidation(t *testing.T) {
	tests := []struct {
		name    string
		specs   []Spec
		wantErr error
	}{
		{name: "single d6", specs: []Spec{{Sides: 6, Count: 1}}},
		{name: "2d10 + 1d3", specs: []Spec{{Sides: 10, Count: 2}, {Sides: 3, Count: 1}}},
		{name: "no dice", specs: nil, wantErr: ErrMissingDice},
		{name: "invalid sides", specs: []Spec{{Sides: 0, Count: 1}}, wantErr: ErrInvalidDiceSpec},
		{name: "invalid count", specs: []Spec{{Sides: 6, Count: 0}}, wantErr: ErrInvalidDiceSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := rand.New(rand.NewPCG(1, 2))
			result, err := RollDice(src, tt.specs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RollDice error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RollDice: %v", err)
			}
			if len(result.Rolls) != len(tt.specs) {
				t.Fatalf("rolls = %d, want %d", len(result.Rolls), len(tt.specs))
			}
			sum := 0
			for i, roll := range result.Rolls {
				if roll.Sides != tt.specs[i].Sides || len(roll.Results) != tt.specs[i].Count {
					t.Fatalf("roll %d = %+v, want spec %+v", i, roll, tt.specs[i])
				}
				rollSum := 0
				for _, v := range roll.Results {
					if v < 1 || v > roll.Sides {
						t.Fatalf("die value %d out of range 1..%d", v, roll.Sides)
					}
					rollSum += v
				}
				if rollSum != roll.Total {
					t.Fatalf("roll total = %d, want %d", roll.Total, rollSum)
				}
				sum += roll.Total
			}
			if result.Total != sum {
				t.Fatalf("result total = %d, want %d", result.Total, sum)
			}
		})
	}
}

func TestRollDiceWithFixedSource(t *testing.T) {
	src := NewFixedSource(7, 3, 2)
	result, err := RollDice(src, []Spec{{Sides: 10, Count: 2}, {Sides: 6, Count: 1}})
	if err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if got, want := result.Values(), []int{7, 3, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
	if result.Total != 12 {
		t.Fatalf("Total = %d, want 12", result.Total)
	}
}

func TestFixedSourceCyclesAndClamps(t *testing.T) {
	src := NewFixedSource(12, 0)
	if got := RollDie(src, 10); got != 10 {
		t.Fatalf("first roll = %d, want 10", got)
	}
	if got := RollDie(src, 10); got != 1 {
		t.Fatalf("second roll = %d, want 1", got)
	}
	if got := RollDie(src, 20); got != 12 {
		t.Fatalf("cycled roll = %d, want 12", got)
	}
	if got := NewFixedSource().IntN(6); got != 0 {
		t.Fatalf("empty source IntN = %d, want 0", got)
	}
}
