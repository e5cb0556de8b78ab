package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates new Logger instance with the specified level.
func New(level int) *Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a Logger writing text records to w.
func NewWithWriter(w io.Writer, level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// WithContext returns a logger annotated with the trace and span ids of the
// span active in ctx, or l itself when there is none.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return &Logger{
		Logger: l.Logger.With("trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String()),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
