package pairing

import (
	"math/rand"

	"github.com/pawnengine/core/internal/domain"
)

// Config carries the tunables generate_pairings needs across dialects.
// Every randomised choice takes this explicit seed rather than reaching
// into a global RNG (spec.md §9).
type Config struct {
	RNGSeed         int64
	BacktrackBudget int // Swiss only; default 64 (spec.md §9)

	// TeamSize is the Scheveningen dialect's expected per-side board
	// count; generateScheveningen rejects a roster that doesn't match
	// when this is set.
	TeamSize int

	// PairingNumberMethod controls how board numbers are assigned once
	// a dialect has produced its pairings. PairingNumberRandom is the
	// only value that consumes rng(); Sequential/BySeed both keep the
	// dialect's natural board order.
	PairingNumberMethod domain.PairingNumberMethod
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{RNGSeed: 1, BacktrackBudget: 64}
}

// rng builds a private generator seeded from c.RNGSeed, never touching
// math/rand's global source.
func (c Config) rng() *rand.Rand {
	return rand.New(rand.NewSource(c.RNGSeed))
}

func (c Config) backtrackBudget() int {
	if c.BacktrackBudget > 0 {
		return c.BacktrackBudget
	}
	return 64
}
