// Package log provides categorized structured logging for stax.
//
// Logging is file-based because the TUI owns stdout/stderr; writing log
// lines to the terminal would corrupt the rendered view. Until Init is
// called all logging functions are no-ops, which keeps unit tests quiet
// without any setup.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category tags a log record with the subsystem it originated from.
type Category string

const (
	// CatUI covers the bubbletea view layer and drag interactions.
	CatUI Category = "ui"
	// CatDrop covers drop evaluation and mutation dispatch.
	CatDrop Category = "drop"
	// CatVCS covers git command execution.
	CatVCS Category = "vcs"
	// CatDB covers the SQLite journal.
	CatDB Category = "db"
	// CatConfig covers configuration loading.
	CatConfig Category = "config"
)

var (
	mu     sync.RWMutex
	logger *slog.Logger
	closer io.Closer
)

// Init opens (or creates) the log file at path and installs a JSON
// handler at the given level. Level accepts "debug", "info", "warn",
// "error"; anything else defaults to info.
func Init(path, level string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // G304: path comes from config, controlled by the user
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(level)}))
	closer = f
	return nil
}

// Close flushes and closes the log file. Safe to call without Init.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = nil
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func active() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug-level message under the given category.
// Remaining arguments are key/value pairs.
func Debug(cat Category, msg string, kv ...any) {
	if l := active(); l != nil {
		l.Debug(msg, append([]any{"cat", string(cat)}, kv...)...)
	}
}

// Info logs an info-level message under the given category.
func Info(cat Category, msg string, kv ...any) {
	if l := active(); l != nil {
		l.Info(msg, append([]any{"cat", string(cat)}, kv...)...)
	}
}

// Warn logs a warning-level message under the given category.
func Warn(cat Category, msg string, kv ...any) {
	if l := active(); l != nil {
		l.Warn(msg, append([]any{"cat", string(cat)}, kv...)...)
	}
}

// Error logs an error-level message under the given category.
func Error(cat Category, msg string, kv ...any) {
	if l := active(); l != nil {
		l.Error(msg, append([]any{"cat", string(cat)}, kv...)...)
	}
}

// ErrorErr logs an error-level message with the error attached under
// the "error" key, followed by any additional key/value pairs.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	if l := active(); l != nil {
		l.Error(msg, append([]any{"cat", string(cat), "error", err}, kv...)...)
	}
}
