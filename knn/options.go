package knn

import (
	"github.com/viant/knn-digits/index"
	"github.com/viant/knn-digits/internal/logging"
)

// DefaultClasses is the size of the label space for digit recognition.
const DefaultClasses = 10

// Option configures a Classifier.
type Option func(c *Classifier)

// WithClasses sets the label space to [0, n).
func WithClasses(n int) Option {
	return func(c *Classifier) { c.classes = n }
}

// WithIndex selects the neighbor index implementation.
func WithIndex(f index.Factory) Option {
	return func(c *Classifier) { c.newIndex = f }
}

// WithParallelism bounds the number of queries PredictBatch runs at once.
func WithParallelism(n int) Option {
	return func(c *Classifier) { c.parallelism = n }
}

// WithLogger sets the logger used for fit and batch events.
func WithLogger(l *logging.Logger) Option {
	return func(c *Classifier) { c.logger = l }
}

// WithProgressEvery logs batch progress every n completed queries. Zero
// disables progress logging.
func WithProgressEvery(n int) Option {
	return func(c *Classifier) { c.progressEvery = n }
}
