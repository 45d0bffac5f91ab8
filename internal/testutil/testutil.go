// Package testutil provides deterministic data generators for tests.
package testutil

import (
	"math/rand"
	"sync"

	"github.com/viant/knn-digits/vector"
)

// RNG wraps a seeded random source. It is safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformVectors generates num vectors of the given dimensionality with
// values in [0, 1), backed by a single array.
func (r *RNG) UniformVectors(num, dim int) []vector.FeatureVector {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dim)
	out := make([]vector.FeatureVector, num)
	for i := range num {
		vec := data[i*dim : (i+1)*dim]
		for j := range vec {
			vec[j] = r.rand.Float32()
		}
		out[i] = vec
	}
	return out
}

// Samples generates num labeled samples with labels in [0, classes).
func (r *RNG) Samples(num, dim, classes int) []vector.Sample {
	vecs := r.UniformVectors(num, dim)
	out := make([]vector.Sample, num)
	for i, v := range vecs {
		out[i] = vector.Sample{Label: r.Intn(classes), Features: v}
	}
	return out
}

// QuantizedSamples generates samples whose values are multiples of 1/levels,
// which produces many exact distance ties.
func (r *RNG) QuantizedSamples(num, dim, classes, levels int) []vector.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]vector.Sample, num)
	for i := range out {
		vec := make(vector.FeatureVector, dim)
		for j := range vec {
			vec[j] = float32(r.rand.Intn(levels)) / float32(levels)
		}
		out[i] = vector.Sample{Label: r.rand.Intn(classes), Features: vec}
	}
	return out
}
