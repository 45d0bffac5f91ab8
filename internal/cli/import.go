package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/viant/knn-digits/dataset"
)

func newImportCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the training and test CSVs into the SQLite database",
		Long: `Shuffles and splits the training CSV the same way predict does, then
replaces the dataset's training samples and test queries in the database
given by --db. A later "predict --from-store" reads them back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.applyClassifierFlags(cmd); err != nil {
				return err
			}
			e.applyStoreFlags(cmd)
			if v, _ := cmd.Flags().GetString("test"); v != "" {
				e.cfg.Data.TestPath = v
			}
			return e.importData(cmd.Context())
		},
	}
	bindClassifierFlags(cmd)
	bindStoreFlags(cmd)
	cmd.Flags().String("test", "", "Unlabeled test CSV (overrides config)")
	return cmd
}

func (e *env) importData(ctx context.Context) error {
	db, store, err := e.openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	train, _, err := e.loadLabeled()
	if err != nil {
		return err
	}
	queries, err := dataset.LoadQueriesFile(e.cfg.Data.TestPath, dataset.WithScale(e.cfg.Data.Scale))
	if err != nil {
		return err
	}
	if err := e.replaceStored(ctx, store, train, queries); err != nil {
		return err
	}
	e.logger.Info("imported dataset",
		"dsn", e.cfg.Store.DSN,
		"dataset", e.cfg.Store.Dataset,
		"samples", len(train),
		"queries", len(queries))
	return nil
}
