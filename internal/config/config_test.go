package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goyaml "gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "origin/HEAD", cfg.Upstream)
	assert.False(t, cfg.ForcePushAllowed)
	assert.True(t, cfg.AutoRefresh)
	assert.Equal(t, 1*time.Second, cfg.AutoRefreshDebounce)
	assert.Equal(t, 50, cfg.LogLimit)
	assert.True(t, cfg.UI.ShowStatusBar)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Tracing.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
repo_dir: /work/repo
upstream: origin/main
force_push_allowed: true
auto_refresh_debounce: 250ms
log_limit: 20
ui:
  show_status_bar: false
log:
  level: debug
tracing:
  enabled: true
  endpoint: localhost:4317
`)

	assert.Equal(t, "/work/repo", cfg.RepoDir)
	assert.Equal(t, "origin/main", cfg.Upstream)
	assert.True(t, cfg.ForcePushAllowed)
	assert.Equal(t, 250*time.Millisecond, cfg.AutoRefreshDebounce)
	assert.Equal(t, 20, cfg.LogLimit)
	assert.False(t, cfg.UI.ShowStatusBar)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)

	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.AutoRefreshDebounce = -time.Second },
			wantErr: "auto_refresh_debounce",
		},
		{
			name:    "negative log limit",
			mutate:  func(c *Config) { c.LogLimit = -1 },
			wantErr: "log_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// TestDefaultConfigTemplate_Parses verifies the commented template stays
// in sync with the Config struct.
func TestDefaultConfigTemplate_Parses(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())

	assert.Equal(t, "origin/HEAD", cfg.Upstream)
	assert.False(t, cfg.ForcePushAllowed)
	assert.True(t, cfg.AutoRefresh)
	assert.Equal(t, 1*time.Second, cfg.AutoRefreshDebounce)
	assert.Equal(t, 50, cfg.LogLimit)
	assert.True(t, cfg.UI.ShowStatusBar)
	assert.Equal(t, "info", cfg.Log.Level)

	require.NoError(t, cfg.Validate())
}

// TestDefaultConfigTemplate_ValidYAML catches syntax errors that
// viper's lenient key handling would paper over.
func TestDefaultConfigTemplate_ValidYAML(t *testing.T) {
	var doc map[string]any
	require.NoError(t, goyaml.Unmarshal([]byte(DefaultConfigTemplate()), &doc))

	for _, key := range []string{"upstream", "force_push_allowed", "auto_refresh", "ui", "log", "tracing"} {
		assert.Contains(t, doc, key)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "force_push_allowed")
}

// loadConfigFromYAML is a helper to load config from YAML string.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(yaml), 0644)
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigFile(configPath)
	err = v.ReadInConfig()
	require.NoError(t, err)

	var cfg Config
	err = v.Unmarshal(&cfg)
	require.NoError(t, err)

	return cfg
}
