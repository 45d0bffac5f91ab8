package cli

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/viant/knn-digits/dataset"
	"github.com/viant/knn-digits/engine"
	"github.com/viant/knn-digits/index"
	"github.com/viant/knn-digits/knn"
	"github.com/viant/knn-digits/vector"
)

// bindClassifierFlags registers the flags that override the classifier and
// data sections of the config.
func bindClassifierFlags(cmd *cobra.Command) {
	cmd.Flags().Int("k", 0, "Number of neighbors that vote (overrides config)")
	cmd.Flags().String("index", "", "Neighbor index: bruteforce or vptree (overrides config)")
	cmd.Flags().String("train", "", "Labeled training CSV (overrides config)")
	cmd.Flags().Int("training-size", -1, "Samples kept for training after shuffling, 0 keeps all (overrides config)")
	cmd.Flags().Int64("seed", 0, "Shuffle seed (overrides config)")
}

func (e *env) applyClassifierFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("k") {
		e.cfg.Classifier.K, _ = cmd.Flags().GetInt("k")
	}
	if v, _ := cmd.Flags().GetString("index"); v != "" {
		e.cfg.Classifier.Index = v
	}
	if v, _ := cmd.Flags().GetString("train"); v != "" {
		e.cfg.Data.TrainPath = v
	}
	if v, _ := cmd.Flags().GetInt("training-size"); v >= 0 {
		e.cfg.Data.TrainingSize = v
	}
	if cmd.Flags().Changed("seed") {
		e.cfg.Data.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	return e.cfg.Validate()
}

// newClassifier builds an unfitted classifier from the current config.
func (e *env) newClassifier() (*knn.Classifier, error) {
	kind, err := index.ParseKind(e.cfg.Classifier.Index)
	if err != nil {
		return nil, err
	}
	return knn.New(e.cfg.Classifier.K,
		knn.WithClasses(e.cfg.Classifier.Classes),
		knn.WithIndex(knn.IndexFactory(kind)),
		knn.WithParallelism(e.cfg.Classifier.Parallelism),
		knn.WithProgressEvery(e.cfg.Classifier.ProgressEvery),
		knn.WithLogger(e.logger),
	)
}

// loadLabeled reads the training CSV, shuffles it with the configured seed
// and splits it into the training prefix and the remainder.
func (e *env) loadLabeled() (train, rest []vector.Sample, err error) {
	samples, err := dataset.LoadTrainFile(e.cfg.Data.TrainPath, dataset.WithScale(e.cfg.Data.Scale))
	if err != nil {
		return nil, nil, err
	}
	dataset.Shuffle(samples, rand.New(rand.NewSource(e.cfg.Data.Seed)))
	size := e.cfg.Data.TrainingSize
	if size == 0 {
		size = len(samples)
	}
	train, rest = dataset.Split(samples, size)
	e.logger.Info("loaded labeled samples",
		"path", e.cfg.Data.TrainPath,
		"total", len(samples),
		"training", len(train),
		"seed", e.cfg.Data.Seed)
	return train, rest, nil
}

// openStore opens the configured SQLite database. The caller closes the
// returned db.
func (e *env) openStore(ctx context.Context) (*sql.DB, *vector.SQLiteStore, error) {
	if e.cfg.Store.DSN == "" {
		return nil, nil, fmt.Errorf("no database configured: set store.dsn or pass --db")
	}
	if err := engine.RegisterVectorFunctions(); err != nil {
		return nil, nil, fmt.Errorf("register vector functions: %w", err)
	}
	db, err := engine.Open(e.cfg.Store.DSN)
	if err != nil {
		return nil, nil, err
	}
	store, err := vector.NewSQLiteStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, store, nil
}

func bindStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("db", "", "SQLite database path (overrides config)")
	cmd.Flags().String("dataset", "", "Dataset name inside the database (overrides config)")
}

func (e *env) applyStoreFlags(cmd *cobra.Command) {
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		e.cfg.Store.DSN = v
	}
	if v, _ := cmd.Flags().GetString("dataset"); v != "" {
		e.cfg.Store.Dataset = v
	}
}

// replaceStored swaps the dataset's stored samples and queries for the ones
// just loaded. Labels are checked first so the store only holds samples the
// classifier accepts.
func (e *env) replaceStored(ctx context.Context, store *vector.SQLiteStore, train []vector.Sample, queries []vector.FeatureVector) error {
	if err := knn.CheckLabels(train, e.cfg.Classifier.Classes); err != nil {
		return err
	}
	name := e.cfg.Store.Dataset
	if err := store.ReplaceSamples(ctx, name, train); err != nil {
		return err
	}
	return store.ReplaceQueries(ctx, name, queries)
}
