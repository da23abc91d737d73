// Package random is the single source of uniform randomness for pattern
// selection and rendering. Callers take a Source so tests can inject a
// scripted one instead of relying on real randomness.
package random

import "math/rand/v2"

// Source yields uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// New returns a PCG-backed source with a random seed.
func New() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeeded returns a reproducible source for a given seed.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed))
}
