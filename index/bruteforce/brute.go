package bruteforce

import (
	"sort"

	"github.com/viant/vec/search"

	"github.com/viant/knn-digits/index"
	"github.com/viant/knn-digits/vector"
)

// Index is a linear-scan index over labeled samples.
type Index struct {
	samples []vector.Sample
	dim     int
}

// New returns an empty brute-force index.
func New() index.Index { return &Index{} }

// Build replaces the indexed samples. The samples slice is retained, not
// copied.
func (i *Index) Build(samples []vector.Sample) error {
	dim, err := index.CheckSamples(samples)
	if err != nil {
		return err
	}
	i.samples = samples
	i.dim = dim
	return nil
}

// Search scores every sample and returns the first k after a stable sort by
// distance.
func (i *Index) Search(query []float32, k int) ([]index.Neighbor, error) {
	if err := index.CheckQuery(query, k, len(i.samples), i.dim); err != nil {
		return nil, err
	}
	q := search.Float32s(query)
	scored := make([]index.Neighbor, len(i.samples))
	for j := range i.samples {
		scored[j] = index.Neighbor{
			Position: j,
			Label:    i.samples[j].Label,
			Distance: float64(q.EuclideanDistance(search.Float32s(i.samples[j].Features))),
		}
	}
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Distance < scored[b].Distance })
	return scored[:k:k], nil
}

// Len returns the number of indexed samples.
func (i *Index) Len() int { return len(i.samples) }

// Dim returns the feature dimensionality.
func (i *Index) Dim() int { return i.dim }
