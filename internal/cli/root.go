// Package cli implements the knn-digits command line.
package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/viant/knn-digits/internal/config"
	"github.com/viant/knn-digits/internal/logging"
)

// env carries the state shared by subcommands once the root command has
// parsed its flags.
type env struct {
	cfg    *config.Config
	logger *logging.Logger
	stop   func()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "knn-digits",
		Short:         "Classify handwritten digits by k-nearest-neighbor vote",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.stop != nil {
				e.stop()
			}
		},
	}
	root.PersistentFlags().String("config", "", "Path to YAML config file")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().String("log-format", "", "Log format: text or json (overrides config)")
	root.PersistentFlags().String("metrics-addr", "", "Address to serve Prometheus metrics on (overrides config)")

	root.AddCommand(newPredictCommand(e))
	root.AddCommand(newEvaluateCommand(e))
	root.AddCommand(newImportCommand(e))
	return root
}

// Execute runs the command line with ctx.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if v, _ := cmd.Flags().GetString("metrics-addr"); v != "" {
		cfg.Metrics.Addr = v
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level, cfg.Log.Format)

	if cfg.Metrics.Addr != "" {
		stop, err := serveMetrics(cfg.Metrics.Addr, e.logger)
		if err != nil {
			return err
		}
		e.stop = stop
	}
	return nil
}

// serveMetrics exposes /metrics on addr until the returned stop func is
// called.
func serveMetrics(addr string, logger *logging.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("metrics server listening", "addr", ln.Addr().String())
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
