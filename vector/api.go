package vector

import (
	"context"
)

// FeatureVector is an ordered sequence of normalized pixel intensities
// representing one image. All vectors handled by a classifier share the same
// length.
type FeatureVector []float32

// Sample is a labeled feature vector used for training. Samples are treated as
// immutable once constructed; a classifier keeps a reference to the Features
// slice rather than a copy.
type Sample struct {
	// Label is the class ID, e.g. the digit 0..9.
	Label int

	// Features holds the normalized pixel values.
	Features FeatureVector
}

// Dim returns the feature dimensionality of s.
func (s Sample) Dim() int { return len(s.Features) }

// Neighbor is a training sample matched by a nearest-neighbor query.
type Neighbor struct {
	// Position is the sample's index in the training set.
	Position int

	// Label is the sample's class ID.
	Label int

	// Distance is the Euclidean distance to the query.
	Distance float64
}

// Store defines the storage API for labeled samples, unlabeled queries and the
// predictions produced for them. Records are grouped under a dataset name so
// that several runs can share one database.
type Store interface {
	// AddSamples appends labeled samples to the dataset, preserving order.
	AddSamples(ctx context.Context, dataset string, samples []Sample) error

	// ReplaceSamples removes the dataset's samples and stores samples in
	// their place, in one transaction.
	ReplaceSamples(ctx context.Context, dataset string, samples []Sample) error

	// Samples returns the dataset's samples in insertion order.
	Samples(ctx context.Context, dataset string) ([]Sample, error)

	// AddQueries appends unlabeled feature vectors to the dataset.
	AddQueries(ctx context.Context, dataset string, queries []FeatureVector) error

	// ReplaceQueries removes the dataset's queries and stores queries in their
	// place, in one transaction.
	ReplaceQueries(ctx context.Context, dataset string, queries []FeatureVector) error

	// Queries returns the dataset's queries in insertion order.
	Queries(ctx context.Context, dataset string) ([]FeatureVector, error)

	// SavePredictions replaces the dataset's predictions with one label per
	// query, keyed by 1-based image id.
	SavePredictions(ctx context.Context, dataset string, predictions []int) error

	// Predictions returns stored predictions ordered by image id.
	Predictions(ctx context.Context, dataset string) ([]int, error)

	// NearestLabels runs a k-nearest-neighbor search over the dataset's
	// samples inside the database.
	NearestLabels(ctx context.Context, dataset string, query FeatureVector, k int) ([]Neighbor, error)
}
