package knn

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/viant/knn-digits/index"
	"github.com/viant/knn-digits/index/bruteforce"
	"github.com/viant/knn-digits/internal/logging"
	"github.com/viant/knn-digits/internal/metrics"
	"github.com/viant/knn-digits/vector"
)

// Classifier is a k-nearest-neighbor classifier. It is safe for concurrent
// use: Fit publishes a new immutable snapshot and queries read whichever
// snapshot was current when they started.
type Classifier struct {
	k             int
	classes       int
	newIndex      index.Factory
	parallelism   int
	progressEvery int
	logger        *logging.Logger

	state atomic.Pointer[fitted]
}

// fitted is the immutable state produced by Fit.
type fitted struct {
	idx index.Index
}

// New creates an unfitted classifier that votes among the k nearest samples.
func New(k int, opts ...Option) (*Classifier, error) {
	if k <= 0 {
		return nil, fmt.Errorf("knn: k=%d: %w", k, vector.ErrInvalidK)
	}
	c := &Classifier{
		k:           k,
		classes:     DefaultClasses,
		newIndex:    bruteforce.New,
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.classes <= 0 {
		return nil, fmt.Errorf("knn: classes must be positive, got %d", c.classes)
	}
	if c.parallelism <= 0 {
		c.parallelism = runtime.GOMAXPROCS(0)
	}
	if c.newIndex == nil {
		c.newIndex = bruteforce.New
	}
	if c.logger == nil {
		c.logger = logging.Noop()
	}
	c.logger = c.logger.WithK(k)
	return c, nil
}

// K returns the neighbor count.
func (c *Classifier) K() int { return c.k }

// Classes returns the size of the label space.
func (c *Classifier) Classes() int { return c.classes }

// Fitted reports whether Fit has completed successfully at least once.
func (c *Classifier) Fitted() bool { return c.state.Load() != nil }

// Len returns the size of the current training set.
func (c *Classifier) Len() int {
	if st := c.state.Load(); st != nil {
		return st.idx.Len()
	}
	return 0
}

// Fit replaces the training set with exactly samples, in the given order. The
// order decides between samples at equal distance from a query. An empty
// training set is accepted, but every later Predict fails until a non-empty
// one is fitted. On error the previous training set stays in effect.
func (c *Classifier) Fit(samples []vector.Sample) error {
	ctx := context.Background()
	if err := CheckLabels(samples, c.classes); err != nil {
		c.logger.LogFit(ctx, len(samples), 0, err)
		return err
	}
	idx := c.newIndex()
	if err := idx.Build(samples); err != nil {
		err = fmt.Errorf("knn: %w", err)
		c.logger.LogFit(ctx, len(samples), 0, err)
		return err
	}
	c.state.Store(&fitted{idx: idx})
	metrics.TrainingSamples.Set(float64(idx.Len()))
	c.logger.LogFit(ctx, idx.Len(), idx.Dim(), nil)
	return nil
}

// Predict returns the majority label among the k training samples nearest to
// features. It fails, without a label, when the classifier is not fitted,
// when k exceeds the training set size, or when features has a different
// length than the training samples.
func (c *Classifier) Predict(features vector.FeatureVector) (int, error) {
	st, err := c.snapshot()
	if err != nil {
		return 0, err
	}
	label, err := c.predict(st, features)
	if err != nil {
		return 0, fmt.Errorf("knn: %w", err)
	}
	return label, nil
}

// Neighbors returns the k training samples nearest to features, in the order
// they are counted by the vote.
func (c *Classifier) Neighbors(features vector.FeatureVector) ([]index.Neighbor, error) {
	st, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	neighbors, err := st.idx.Search(features, c.k)
	if err != nil {
		return nil, fmt.Errorf("knn: %w", err)
	}
	return neighbors, nil
}

// PredictBatch classifies every query and returns one label per query, in
// query order. Queries run concurrently, bounded by the configured
// parallelism. The first failing query, or cancellation of ctx, aborts the
// batch and no labels are returned.
func (c *Classifier) PredictBatch(ctx context.Context, queries []vector.FeatureVector) ([]int, error) {
	st, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	total := len(queries)
	out := make([]int, total)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for i := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			label, err := c.predict(st, queries[i])
			if err != nil {
				return fmt.Errorf("knn: query %d: %w", i, err)
			}
			out[i] = label
			if n := done.Add(1); c.progressEvery > 0 && n%int64(c.progressEvery) == 0 {
				c.logger.LogProgress(gctx, int(n), total)
			}
			return nil
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	c.logger.LogBatch(ctx, total, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Classifier) snapshot() (*fitted, error) {
	st := c.state.Load()
	if st == nil {
		return nil, fmt.Errorf("knn: %w", vector.ErrNotFitted)
	}
	return st, nil
}

func (c *Classifier) predict(st *fitted, features vector.FeatureVector) (int, error) {
	start := time.Now()
	neighbors, err := st.idx.Search(features, c.k)
	if err != nil {
		metrics.PredictErrorsTotal.Inc()
		return 0, err
	}
	label, err := Vote(neighbors, c.classes)
	if err != nil {
		metrics.PredictErrorsTotal.Inc()
		return 0, err
	}
	metrics.ObservePrediction(label, time.Since(start).Seconds())
	return label, nil
}
