// Package rng provides the seeded random stream that drives level generation.
// Every generation call owns exactly one Stream; the same seed always replays
// the same draw sequence, so a Level can be regenerated byte-for-byte from
// (config, seed). Nothing in this package touches the global rand source.
package rng

import "math/rand"

// Stream is a deterministic pseudo-random stream derived from a numeric seed.
type Stream struct {
	src *rand.Rand
}

// New creates a Stream for the given seed.
func New(seed int64) *Stream {
	return &Stream{src: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	return s.src.Float64()
}

// IntN returns an int in [0, n). n must be positive.
func (s *Stream) IntN(n int) int {
	return int(s.Float64() * float64(n))
}

// Between returns an int in [lo, hi] inclusive.
func (s *Stream) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.IntN(hi-lo+1)
}

// Chance draws once and reports whether the draw fell under p.
func (s *Stream) Chance(p float64) bool {
	return s.Float64() < p
}

// Pick returns a random element of items, consuming one draw.
func Pick[T any](s *Stream, items []T) T {
	return items[s.IntN(len(items))]
}
