// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rng

import "math/rand/v2"

// DefaultSeed is used when no seed is configured
const DefaultSeed uint64 = 101

// Source is the deterministic random stream shared by the rating model,
// option generation and the populace. Draws must be sequential.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a seeded stream. The same seed always yields the same draws.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Range returns an int in [lo, hi)
func Range(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo)
}

// FloatRange returns a float in [lo, hi)
func FloatRange(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Pick returns a random element of items; items must not be empty
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Chance returns true with probability p
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
