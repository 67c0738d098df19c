package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the process-wide structured logger. Commands call Setup once
// before doing any work; the zero value falls back to slog's default.
var Logger = slog.Default()

// Verbose reports whether debug-level logging is enabled.
var Verbose bool

// Setup configures the global logger. When verbose is true, debug records
// are emitted. When jsonOutput is true, records are encoded as JSON lines.
// A nil writer defaults to stderr.
func Setup(verbose, jsonOutput bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Logger = slog.New(handler)
}

// Debug logs at debug level (visible only in verbose mode).
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger with the given attributes attached to every record.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
