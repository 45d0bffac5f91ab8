package vector

import (
	"fmt"
	"math"

	"github.com/viant/vec/search"
)

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns ErrDimensionMismatch if the vectors have different lengths; values
// are never paired over a shorter common prefix.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	if len(a) == 0 {
		return 0, nil
	}
	return float64(search.Float32s(a).EuclideanDistance(b)), nil
}

// CheckDim verifies that v has exactly dim elements.
func CheckDim(v []float32, dim int) error {
	if len(v) != dim {
		return fmt.Errorf("vector: got dimension %d, want %d: %w", len(v), dim, ErrDimensionMismatch)
	}
	return nil
}

// CheckFinite reports ErrNaNFeature if v holds a NaN, which would make
// distance ordering undefined.
func CheckFinite(v []float32) error {
	for i, x := range v {
		if math.IsNaN(float64(x)) {
			return fmt.Errorf("vector: value %d: %w", i, ErrNaNFeature)
		}
	}
	return nil
}
