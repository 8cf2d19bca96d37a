package breggo

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with breggo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithRun adds a run index field to the logger.
func (l *Logger) WithRun(run int) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", run),
	}
}

// WithK adds a cluster-count field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDivergence adds a divergence field to the logger.
func (l *Logger) WithDivergence(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("divergence", name),
	}
}

// LogTraining logs the outcome of a training job.
func (l *Logger) LogTraining(ctx context.Context, k, centers int, cost float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "training failed",
			"k", k,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "training completed",
			"k", k,
			"centers", centers,
			"cost", cost,
		)
	}
}

// LogSnapshot logs a model snapshot operation.
func (l *Logger) LogSnapshot(ctx context.Context, compression string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"compression", compression,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"compression", compression,
			"bytes", size,
		)
	}
}
