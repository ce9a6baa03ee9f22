package grass

import (
	"golang.org/x/exp/rand"
)

// Rand is the random source used for color jitter and candidate offsets.
type Rand interface {
	// Float32 returns a value in [0, 1).
	Float32() float32
	// Range returns a value in [min, max).
	Range(min, max float32) float32
}

// SeededRand is a Rand backed by a seeded PCG generator, so strokes are
// reproducible for a given seed.
type SeededRand struct {
	r *rand.Rand
}

// NewRand returns a random source seeded with seed.
func NewRand(seed uint64) *SeededRand {
	return &SeededRand{r: rand.New(rand.NewSource(seed))}
}

// Float32 returns a value in [0, 1).
func (s *SeededRand) Float32() float32 {
	return s.r.Float32()
}

// Range returns a value in [min, max).
func (s *SeededRand) Range(min, max float32) float32 {
	return min + s.r.Float32()*(max-min)
}
