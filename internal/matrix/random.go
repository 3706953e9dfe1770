package matrix

import (
	"math/rand/v2"
)

// NewSource returns the seeded generator used for all matrix draws.
// The same seed always yields the same stream.
func NewSource(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// Random64 fills a rows x cols matrix with float64 values in [0, 1).
func Random64(r *rand.Rand, rows, cols int) *Matrix[float64] {
	m := New[float64](rows, cols)
	for i := range m.data {
		m.data[i] = r.Float64()
	}
	return m
}

// Random32 fills a rows x cols matrix with float32 values in [0, 1).
func Random32(r *rand.Rand, rows, cols int) *Matrix[float32] {
	m := New[float32](rows, cols)
	for i := range m.data {
		m.data[i] = r.Float32()
	}
	return m
}
