package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/knn-digits/dataset"
	"github.com/viant/knn-digits/knn"
	"github.com/viant/knn-digits/vector"
)

func newPredictCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Fit on the training CSV and write one label per test image",
		Long: `Loads and shuffles the labeled training CSV, fits the classifier on the
configured number of samples, classifies every row of the test CSV and writes
an ImageId,Label submission file.

With --db the training samples, queries and predictions also replace those
stored for the dataset in a SQLite database. With --from-store the samples and queries are read from that
database instead of the CSV files, and --sql-search ranks neighbors inside
SQLite with the vec_l2 function.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.applyClassifierFlags(cmd); err != nil {
				return err
			}
			e.applyStoreFlags(cmd)
			if v, _ := cmd.Flags().GetString("test"); v != "" {
				e.cfg.Data.TestPath = v
			}
			if v, _ := cmd.Flags().GetString("output"); v != "" {
				e.cfg.Data.OutputPath = v
			}
			fromStore, _ := cmd.Flags().GetBool("from-store")
			sqlSearch, _ := cmd.Flags().GetBool("sql-search")
			return e.predict(cmd.Context(), fromStore, sqlSearch)
		},
	}
	bindClassifierFlags(cmd)
	bindStoreFlags(cmd)
	cmd.Flags().String("test", "", "Unlabeled test CSV (overrides config)")
	cmd.Flags().String("output", "", "Submission CSV to write (overrides config)")
	cmd.Flags().Bool("from-store", false, "Read samples and queries from the database instead of CSV")
	cmd.Flags().Bool("sql-search", false, "Rank neighbors in SQLite instead of in memory")
	return cmd
}

func (e *env) predict(ctx context.Context, fromStore, sqlSearch bool) error {
	if (fromStore || sqlSearch) && e.cfg.Store.DSN == "" {
		return fmt.Errorf("--from-store and --sql-search need a database: pass --db")
	}

	var store *vector.SQLiteStore
	if e.cfg.Store.DSN != "" {
		db, s, err := e.openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()
		store = s
	}
	name := e.cfg.Store.Dataset

	var (
		train   []vector.Sample
		queries []vector.FeatureVector
		err     error
	)
	if fromStore {
		if train, err = store.Samples(ctx, name); err != nil {
			return err
		}
		if queries, err = store.Queries(ctx, name); err != nil {
			return err
		}
	} else {
		if train, _, err = e.loadLabeled(); err != nil {
			return err
		}
		if queries, err = dataset.LoadQueriesFile(e.cfg.Data.TestPath, dataset.WithScale(e.cfg.Data.Scale)); err != nil {
			return err
		}
		if store != nil {
			if err = e.replaceStored(ctx, store, train, queries); err != nil {
				return err
			}
		}
	}

	var preds []int
	if sqlSearch {
		preds, err = e.predictInStore(ctx, store, queries)
	} else {
		preds, err = e.predictInMemory(ctx, train, queries)
	}
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.SavePredictions(ctx, name, preds); err != nil {
			return err
		}
	}
	if err := dataset.WritePredictionsFile(e.cfg.Data.OutputPath, preds); err != nil {
		return err
	}
	e.logger.Info("wrote predictions", "path", e.cfg.Data.OutputPath, "count", len(preds))
	return nil
}

func (e *env) predictInMemory(ctx context.Context, train []vector.Sample, queries []vector.FeatureVector) ([]int, error) {
	c, err := e.newClassifier()
	if err != nil {
		return nil, err
	}
	if err := c.Fit(train); err != nil {
		return nil, err
	}
	return c.PredictBatch(ctx, queries)
}

// predictInStore votes over the neighbors SQLite ranks for each query. It
// runs one query at a time since the store serializes on its connection.
func (e *env) predictInStore(ctx context.Context, store *vector.SQLiteStore, queries []vector.FeatureVector) ([]int, error) {
	k, classes := e.cfg.Classifier.K, e.cfg.Classifier.Classes
	preds := make([]int, len(queries))
	for i, q := range queries {
		neighbors, err := store.NearestLabels(ctx, e.cfg.Store.Dataset, q, k)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		if len(neighbors) < k {
			return nil, fmt.Errorf("query %d: k=%d, %d stored samples: %w", i, k, len(neighbors), vector.ErrKExceedsTrainingSet)
		}
		if preds[i], err = knn.Vote(neighbors, classes); err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		if every := e.cfg.Classifier.ProgressEvery; every > 0 && (i+1)%every == 0 {
			e.logger.LogProgress(ctx, i+1, len(queries))
		}
	}
	return preds, nil
}
