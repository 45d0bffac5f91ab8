package bruteforce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/knn-digits/vector"
)

func TestIndex_SearchOrdersByDistance(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Build([]vector.Sample{
		{Label: 1, Features: vector.FeatureVector{3, 0}},
		{Label: 0, Features: vector.FeatureVector{1, 0}},
		{Label: 0, Features: vector.FeatureVector{0, 2}},
	}))
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 2, idx.Dim())

	got, err := idx.Search([]float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 0}, positions(got))
	assert.Equal(t, []float64{1, 2, 3}, distances(got))
	assert.Equal(t, []int{0, 0, 1}, labels(got))
}

func TestIndex_TiesKeepInsertionOrder(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Build([]vector.Sample{
		{Label: 4, Features: vector.FeatureVector{0, 1}},
		{Label: 2, Features: vector.FeatureVector{1, 0}},
		{Label: 9, Features: vector.FeatureVector{0, -1}},
		{Label: 7, Features: vector.FeatureVector{-1, 0}},
	}))

	got, err := idx.Search([]float32{0, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, positions(got))
	assert.Equal(t, []int{4, 2}, labels(got))
}

func TestIndex_Errors(t *testing.T) {
	idx := New()
	_, err := idx.Search([]float32{0}, 1)
	assert.ErrorIs(t, err, vector.ErrEmptyTrainingSet)

	require.NoError(t, idx.Build([]vector.Sample{{Label: 1, Features: vector.FeatureVector{1, 1}}}))
	_, err = idx.Search([]float32{0, 0}, 2)
	assert.ErrorIs(t, err, vector.ErrKExceedsTrainingSet)
	_, err = idx.Search([]float32{0, 0, 0}, 1)
	assert.ErrorIs(t, err, vector.ErrDimensionMismatch)

	err = idx.Build([]vector.Sample{
		{Label: 1, Features: vector.FeatureVector{1, 1}},
		{Label: 1, Features: vector.FeatureVector{1}},
	})
	assert.ErrorIs(t, err, vector.ErrDimensionMismatch)
	// A failed build keeps the previous samples.
	assert.Equal(t, 1, idx.Len())
}

func positions(ns []vector.Neighbor) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.Position
	}
	return out
}

func labels(ns []vector.Neighbor) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.Label
	}
	return out
}

func distances(ns []vector.Neighbor) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = n.Distance
	}
	return out
}
