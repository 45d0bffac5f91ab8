// Package metrics exposes Prometheus instruments for the classifier.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "knn_predictions_total",
		Help: "The total number of queries classified, by predicted label",
	}, []string{"label"})

	PredictErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "knn_predict_errors_total",
		Help: "The total number of queries that failed to classify",
	})

	PredictDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "knn_predict_duration_seconds",
		Help:    "Time spent classifying a single query",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	})

	TrainingSamples = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "knn_training_samples",
		Help: "The number of samples in the fitted training set",
	})

	EvaluationAccuracy = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "knn_evaluation_accuracy",
		Help: "Accuracy of the most recent holdout evaluation",
	})
)

// ObservePrediction records one classified query.
func ObservePrediction(label int, seconds float64) {
	PredictionsTotal.WithLabelValues(strconv.Itoa(label)).Inc()
	PredictDuration.Observe(seconds)
}
