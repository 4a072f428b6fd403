package tupledict

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dictionary-specific helpers so every
// package of the stack logs with the same field names.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithSchema adds a schema name field to the logger.
func (l *Logger) WithSchema(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("schema", name),
	}
}

// WithFieldCount adds a field count to the logger.
func (l *Logger) WithFieldCount(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("fields", n),
	}
}

// LogBuild logs a dictionary construction.
func (l *Logger) LogBuild(ctx context.Context, fields, bytes int, offHeap bool) {
	l.DebugContext(ctx, "dictionary built",
		"fields", fields,
		"bytes", bytes,
		"off_heap", offHeap,
	)
}

// LogRelease logs the release of a dictionary's block.
func (l *Logger) LogRelease(ctx context.Context, fields, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dictionary release failed",
			"fields", fields,
			"bytes", bytes,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "dictionary released",
		"fields", fields,
		"bytes", bytes,
	)
}

// LogSwap logs a content exchange between two dictionaries.
func (l *Logger) LogSwap(ctx context.Context, fieldsA, fieldsB int) {
	l.DebugContext(ctx, "dictionary swapped",
		"fields_a", fieldsA,
		"fields_b", fieldsB,
	)
}
