package vecfilter

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with vecfilter-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogParse logs the compilation of a filter. kind is "where" or
// "where_document".
func (l *Logger) LogParse(ctx context.Context, kind string, cached bool, err error) {
	if err != nil {
		l.WarnContext(ctx, "filter rejected",
			"kind", kind,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "filter compiled",
			"kind", kind,
			"cached", cached,
		)
	}
}

// LogSelect logs a select operation.
func (l *Logger) LogSelect(ctx context.Context, candidates, selected int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "select failed",
			"candidates", candidates,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "select completed",
			"candidates", candidates,
			"selected", selected,
			"duration", duration,
		)
	}
}

// LogLoad logs loading a record snapshot.
func (l *Logger) LogLoad(ctx context.Context, uri string, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"uri", uri,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "records loaded",
			"uri", uri,
			"records", records,
		)
	}
}
