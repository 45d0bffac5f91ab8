package knn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/knn-digits/index"
	"github.com/viant/knn-digits/vector"
)

func neighbors(labels ...int) []index.Neighbor {
	out := make([]index.Neighbor, len(labels))
	for i, l := range labels {
		out[i] = index.Neighbor{Position: i, Label: l, Distance: float64(i)}
	}
	return out
}

func TestVote(t *testing.T) {
	cases := []struct {
		name    string
		labels  []int
		classes int
		want    int
	}{
		{name: "majority", labels: []int{0, 0, 1}, classes: 10, want: 0},
		{name: "majority later label", labels: []int{7, 9, 9}, classes: 10, want: 9},
		{name: "two-way tie picks lowest", labels: []int{1, 0}, classes: 10, want: 0},
		{name: "three-way tie picks lowest", labels: []int{8, 4, 6}, classes: 10, want: 4},
		{name: "single", labels: []int{3}, classes: 10, want: 3},
		{name: "wider label space", labels: []int{15, 15, 11}, classes: 16, want: 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Vote(neighbors(tc.labels...), tc.classes)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVote_Rejects(t *testing.T) {
	_, err := Vote(nil, 10)
	assert.ErrorIs(t, err, vector.ErrEmptyTrainingSet)

	for _, labels := range [][]int{{12, 2}, {12, 12, 12}, {-1}} {
		_, err = Vote(neighbors(labels...), 10)
		assert.ErrorIs(t, err, vector.ErrLabelOutOfRange, "labels %v", labels)
	}

	_, err = Vote(neighbors(0), 0)
	assert.Error(t, err)
}

func TestCheckLabels(t *testing.T) {
	ok := []vector.Sample{{Label: 0}, {Label: 9}}
	assert.NoError(t, CheckLabels(ok, 10))
	assert.ErrorIs(t, CheckLabels([]vector.Sample{{Label: 3}, {Label: 10}}, 10), vector.ErrLabelOutOfRange)
	assert.NoError(t, CheckLabels(nil, 10))
}

func TestIndexFactory(t *testing.T) {
	assert.NotNil(t, IndexFactory(index.KindBruteForce)())
	assert.NotNil(t, IndexFactory(index.KindVPTree)())
}
