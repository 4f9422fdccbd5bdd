// Package config provides configuration types and defaults for stax.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for stax.
type Config struct {
	// RepoDir is the repository to operate on. Empty means the current
	// working directory.
	RepoDir string `mapstructure:"repo_dir"`

	// Upstream is the reference commits are checked against to decide
	// whether they have been integrated.
	Upstream string `mapstructure:"upstream"`

	// ForcePushAllowed permits rewriting commits that already exist on
	// the remote. Leave false for branches others pull from.
	ForcePushAllowed bool `mapstructure:"force_push_allowed"`

	// JournalPath is the SQLite file recording applied mutations.
	// Empty means ~/.stax/stax.db.
	JournalPath string `mapstructure:"journal_path"`

	AutoRefresh         bool          `mapstructure:"auto_refresh"`
	AutoRefreshDebounce time.Duration `mapstructure:"auto_refresh_debounce"`

	LogLimit int `mapstructure:"log_limit"`

	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ShowAuthors   bool `mapstructure:"show_authors"`
}

// LogConfig holds logging configuration options.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`

	// File receives the JSON log stream. Empty means ~/.stax/stax.log.
	File string `mapstructure:"file"`
}

// TracingConfig holds OpenTelemetry exporter options.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Endpoint is an OTLP gRPC collector address. When empty, enabled
	// tracing writes spans to File instead.
	Endpoint string `mapstructure:"endpoint"`
	File     string `mapstructure:"file"`
}

// Validate checks configuration values for errors.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.AutoRefreshDebounce < 0 {
		return fmt.Errorf("auto_refresh_debounce must not be negative")
	}
	if c.LogLimit < 0 {
		return fmt.Errorf("log_limit must not be negative")
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Upstream:            "origin/HEAD",
		AutoRefresh:         true,
		AutoRefreshDebounce: 1 * time.Second,
		LogLimit:            50,
		UI: UIConfig{
			ShowStatusBar: true,
			ShowAuthors:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Stax Configuration

# Repository to operate on (default: current directory)
# repo_dir: /path/to/repo

# Reference commits are compared against to decide whether they have
# already been integrated upstream
upstream: origin/HEAD

# Allow rewriting commits that already exist on the remote.
# Amending or squashing a pushed commit requires a force push afterwards;
# leave this off for branches other people pull from.
force_push_allowed: false

# SQLite file recording every applied mutation (default: ~/.stax/stax.db)
# journal_path: /path/to/stax.db

# Refresh the graph when the repository changes behind stax
auto_refresh: true
auto_refresh_debounce: 1s

# Commits loaded per branch
log_limit: 50

# UI settings
ui:
  show_status_bar: true  # Show status bar at bottom
  show_authors: true     # Show commit authors on cards

# Logging
log:
  level: info            # debug, info, warn, error
  # file: /path/to/stax.log

# Tracing (OpenTelemetry)
tracing:
  enabled: false
  # endpoint: localhost:4317   # OTLP gRPC collector
  # file: /path/to/trace.json  # used when no endpoint is set
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
