package index

import (
	"fmt"
	"strings"

	"github.com/viant/knn-digits/vector"
)

// Neighbor is a training sample returned by Search.
type Neighbor = vector.Neighbor

// Index defines an exact k-nearest-neighbor index over labeled samples.
//
// Search results are ordered by ascending Euclidean distance; samples at equal
// distance keep their training-set insertion order.
type Index interface {
	// Build replaces the indexed samples with exactly the given ones. All
	// samples must share the same feature length.
	Build(samples []vector.Sample) error

	// Search returns the k samples closest to query. k must be positive and
	// no larger than Len, and query must have length Dim.
	Search(query []float32, k int) ([]Neighbor, error)

	// Len returns the number of indexed samples.
	Len() int

	// Dim returns the feature dimensionality, or 0 for an empty index.
	Dim() int
}

// Factory creates an empty Index.
type Factory func() Index

// Kind names an index implementation.
type Kind string

const (
	KindBruteForce Kind = "bruteforce"
	KindVPTree     Kind = "vptree"
)

// ParseKind normalizes an index name from configuration.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "brute", "bruteforce", "auto":
		return KindBruteForce, nil
	case "vptree", "vp", "cover":
		return KindVPTree, nil
	default:
		return "", fmt.Errorf("index: unknown index kind %q", name)
	}
}

// CheckSamples validates samples for Build and returns their common
// dimensionality.
func CheckSamples(samples []vector.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	dim := len(samples[0].Features)
	if dim == 0 {
		return 0, fmt.Errorf("index: sample 0: %w", vector.ErrEmptyFeatureVector)
	}
	for i := range samples {
		if len(samples[i].Features) != dim {
			return 0, fmt.Errorf("index: sample %d has dimension %d, want %d: %w",
				i, len(samples[i].Features), dim, vector.ErrDimensionMismatch)
		}
		if err := vector.CheckFinite(samples[i].Features); err != nil {
			return 0, fmt.Errorf("index: sample %d: %w", i, err)
		}
	}
	return dim, nil
}

// CheckQuery validates a Search call against an index of n samples with the
// given dimensionality.
func CheckQuery(query []float32, k, n, dim int) error {
	if k <= 0 {
		return fmt.Errorf("index: k=%d: %w", k, vector.ErrInvalidK)
	}
	if n == 0 {
		return fmt.Errorf("index: %w", vector.ErrEmptyTrainingSet)
	}
	if k > n {
		return fmt.Errorf("index: k=%d, training set size %d: %w", k, n, vector.ErrKExceedsTrainingSet)
	}
	if len(query) != dim {
		return fmt.Errorf("index: query dimension %d, index dimension %d: %w", len(query), dim, vector.ErrDimensionMismatch)
	}
	if err := vector.CheckFinite(query); err != nil {
		return fmt.Errorf("index: query: %w", err)
	}
	return nil
}
