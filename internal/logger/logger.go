// Package logger provides the process-wide diagnostic log for tripdata.
//
// Messages are structured key/value records written through log/slog.
// Warnings and errors are always written; debug messages and section
// headers only appear when verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = "text"
	level             = new(slog.LevelVar)
	configured        = slog.LevelInfo
	base              = newLogger()
)

// Setup configures the minimum level and the record format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Verbose mode, once enabled, keeps the level at debug.
func Setup(lvl, fmtName string) {
	mu.Lock()
	defer mu.Unlock()
	configured = parseLevel(lvl)
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(configured)
	}
	format = strings.ToLower(fmtName)
	base = newLogger()
}

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(configured)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for log records.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = newLogger()
}

// L returns the current logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// With returns a logger that adds args to every record.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

// Debug logs msg with key/value args when verbose mode is enabled.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs a warning.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs an error.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// newLogger builds a logger for the current output and format (caller must hold lock).
func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(output, opts))
	}
	return slog.New(slog.NewTextHandler(output, opts))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
