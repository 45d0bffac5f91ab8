package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/viant/knn-digits/knn"
)

func newEvaluateCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Measure accuracy on the labeled samples left out of training",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.applyClassifierFlags(cmd); err != nil {
				return err
			}
			holdout, _ := cmd.Flags().GetInt("holdout")
			if holdout < 0 {
				return fmt.Errorf("--holdout must not be negative, got %d", holdout)
			}
			return e.evaluate(cmd.Context(), cmd.OutOrStdout(), holdout)
		},
	}
	bindClassifierFlags(cmd)
	cmd.Flags().Int("holdout", 0, "Score at most this many held-out samples, 0 scores all")
	return cmd
}

func (e *env) evaluate(ctx context.Context, out io.Writer, holdout int) error {
	train, rest, err := e.loadLabeled()
	if err != nil {
		return err
	}
	if holdout > 0 && holdout < len(rest) {
		rest = rest[:holdout]
	}

	c, err := e.newClassifier()
	if err != nil {
		return err
	}
	if err := c.Fit(train); err != nil {
		return err
	}
	report, err := knn.Evaluate(ctx, c, rest)
	if err != nil {
		return err
	}
	e.logger.Info("evaluation finished",
		"holdout", report.Total,
		"correct", report.Correct,
		"accuracy", report.Accuracy)

	fmt.Fprintf(out, "accuracy: %.4f (%d/%d)\n", report.Accuracy, report.Correct, report.Total)
	fmt.Fprintln(out, "recall by label:")
	for label := 0; label < c.Classes(); label++ {
		fmt.Fprintf(out, "  %d: %.4f\n", label, report.Recall(label))
	}
	fmt.Fprintf(out, "confusion (rows actual, columns predicted):\n%v\n", mat.Formatted(report.Confusion, mat.Squeeze()))
	return nil
}
