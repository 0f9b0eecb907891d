// Package random provides seeds and seeded sources for dice rolls.
//
// Seeds come from crypto/rand. Sources wrap a PCG generator so a session
// started from a recorded seed replays the same dice.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Source is a seeded pseudo-random source satisfying dice.Source.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// NewSource returns a deterministic source for seed.
func NewSource(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the source was built from.
func (s *Source) Seed() int64 {
	return s.seed
}

// IntN returns a value in [0, n). It panics when n <= 0.
func (s *Source) IntN(n int) int {
	return s.rng.IntN(n)
}
