package knn

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/viant/knn-digits/internal/metrics"
	"github.com/viant/knn-digits/vector"
)

// ErrEmptyHoldout is returned by Evaluate when there is nothing to score.
var ErrEmptyHoldout = errors.New("knn: empty holdout set")

// Report summarizes a holdout evaluation.
type Report struct {
	Total    int
	Correct  int
	Accuracy float64

	// Confusion counts holdout samples by actual label (row) and predicted
	// label (column).
	Confusion *mat.Dense
}

// Evaluate classifies the holdout samples and compares the predictions with
// their labels.
func Evaluate(ctx context.Context, c *Classifier, holdout []vector.Sample) (*Report, error) {
	if len(holdout) == 0 {
		return nil, ErrEmptyHoldout
	}
	queries := make([]vector.FeatureVector, len(holdout))
	for i := range holdout {
		if l := holdout[i].Label; l < 0 || l >= c.classes {
			return nil, fmt.Errorf("knn: holdout sample %d label %d not in [0, %d): %w", i, l, c.classes, vector.ErrLabelOutOfRange)
		}
		queries[i] = holdout[i].Features
	}
	predicted, err := c.PredictBatch(ctx, queries)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Total:     len(holdout),
		Confusion: mat.NewDense(c.classes, c.classes, nil),
	}
	for i, p := range predicted {
		actual := holdout[i].Label
		report.Confusion.Set(actual, p, report.Confusion.At(actual, p)+1)
		if p == actual {
			report.Correct++
		}
	}
	report.Accuracy = float64(report.Correct) / float64(report.Total)
	metrics.EvaluationAccuracy.Set(report.Accuracy)
	return report, nil
}

// Recall returns the fraction of samples with the given actual label that
// were predicted correctly, or 0 when the label does not occur.
func (r *Report) Recall(label int) float64 {
	row := mat.Row(nil, label, r.Confusion)
	total := floats.Sum(row)
	if total == 0 {
		return 0
	}
	return row[label] / total
}
