// Package logging provides structured logging with consistent field names
// for the classifier, loaders and command line.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with classifier-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to stderr. format is "text" or "json".
func New(level slog.Level, format string) *Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(w io.Writer, level slog.Level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	}))}
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: invalid level %q", s)
	}
	return level, nil
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{Logger: l.Logger.With("dimension", dim)}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{Logger: l.Logger.With("count", count)}
}

// LogFit logs a fit operation.
func (l *Logger) LogFit(ctx context.Context, samples, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"samples", samples,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "fit completed",
		"samples", samples,
		"dimension", dimension,
	)
}

// LogBatch logs the outcome of a batch prediction.
func (l *Logger) LogBatch(ctx context.Context, queries int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch prediction failed",
			"queries", queries,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "batch prediction completed",
		"queries", queries,
		"elapsed", elapsed,
	)
}

// LogProgress logs how many queries of a batch have been classified.
func (l *Logger) LogProgress(ctx context.Context, done, total int) {
	l.InfoContext(ctx, "processing images",
		"done", done,
		"total", total,
	)
}
