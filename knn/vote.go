package knn

import (
	"fmt"

	"github.com/viant/knn-digits/index"
	"github.com/viant/knn-digits/vector"
)

// Vote returns the most frequent label among neighbors over the label space
// [0, classes). When several labels share the highest count the lowest of
// them wins. An empty neighbor list, or any label outside the label space,
// is an error.
func Vote(neighbors []index.Neighbor, classes int) (int, error) {
	if classes <= 0 {
		return 0, fmt.Errorf("knn: vote: classes must be positive, got %d", classes)
	}
	if len(neighbors) == 0 {
		return 0, fmt.Errorf("knn: vote without neighbors: %w", vector.ErrEmptyTrainingSet)
	}
	counts := make([]int, classes)
	for _, n := range neighbors {
		if n.Label < 0 || n.Label >= classes {
			return 0, fmt.Errorf("knn: neighbor at position %d label %d not in [0, %d): %w",
				n.Position, n.Label, classes, vector.ErrLabelOutOfRange)
		}
		counts[n.Label]++
	}
	best := 0
	for label := 1; label < classes; label++ {
		if counts[label] > counts[best] {
			best = label
		}
	}
	return best, nil
}

// CheckLabels verifies every sample label lies in [0, classes).
func CheckLabels(samples []vector.Sample, classes int) error {
	for i := range samples {
		if l := samples[i].Label; l < 0 || l >= classes {
			return fmt.Errorf("knn: sample %d label %d not in [0, %d): %w", i, l, classes, vector.ErrLabelOutOfRange)
		}
	}
	return nil
}
