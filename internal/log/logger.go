// Package log wraps slog with a component attribute so each part of
// the client tags its own output.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with a component name attached to every record.
type Logger struct {
	*slog.Logger
	component string
}

// New creates a logger writing text records to w at the given level.
func New(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler), component: "app"}
}

// Default returns a logger writing to stderr. The level comes from
// EXPENSEPILOT_LOG_LEVEL (debug, info, warn, error), defaulting to warn
// so normal CLI output stays clean.
func Default() *Logger {
	level := slog.LevelWarn
	switch os.Getenv("EXPENSEPILOT_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return New(os.Stderr, level)
}

// WithComponent returns a logger tagging records with the component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("component", component),
		component: component,
	}
}

// With returns a logger with extra attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), component: l.component}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}
