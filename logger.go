package shallowshadow

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with shallowshadow-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithObservables adds an observable count field to the logger.
func (l *Logger) WithObservables(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("observables", count),
	}
}

// WithDepth adds a circuit depth field to the logger.
func (l *Logger) WithDepth(depth int) *Logger {
	return &Logger{
		Logger: l.Logger.With("depth", depth),
	}
}

// LogMeasurement logs one derived measurement circuit.
func (l *Logger) LogMeasurement(ctx context.Context, m, covered, total int) {
	l.DebugContext(ctx, "measurement derived",
		"measurement", m,
		"covered", covered,
		"observables", total,
	)
}

// LogRun logs the outcome of a full derandomization run.
func (l *Logger) LogRun(ctx context.Context, measurements, covered, total int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "derandomization failed",
			"measurements", measurements,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "derandomization completed",
			"measurements", measurements,
			"covered", covered,
			"observables", total,
		)
	}
}
