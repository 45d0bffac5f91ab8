package dataset

import (
	"math/rand"

	"github.com/viant/knn-digits/vector"
)

// Shuffle permutes samples in place using rng. Passing a generator built from
// a fixed seed makes the order reproducible.
func Shuffle(samples []vector.Sample, rng *rand.Rand) {
	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
}

// Split returns the first n samples and the rest. n is clamped to
// [0, len(samples)]; both halves share the input's backing array.
func Split(samples []vector.Sample, n int) (head, tail []vector.Sample) {
	n = max(0, min(n, len(samples)))
	return samples[:n:n], samples[n:]
}
