package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/toolserver/tools"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "toolserver", cfg.Name)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, tools.DefaultMaxSteps, cfg.Calculator.MaxSteps)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "missing name", mutate: func(c *Config) { c.Name = "" }, wantField: "name"},
		{name: "missing version", mutate: func(c *Config) { c.Version = "" }, wantField: "version"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantField: "log_level"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantField: "log_format"},
		{name: "valid json format", mutate: func(c *Config) { c.LogFormat = "json" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var configErr *ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.wantField, configErr.Field)
		})
	}
}

func TestValidate_DoesNotModifyConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Calculator.MaxSteps = 0
	before := *cfg

	require.NoError(t, cfg.Validate())
	assert.Equal(t, before, *cfg)
}

func TestToolOptions(t *testing.T) {
	tests := []struct {
		name     string
		maxSteps uint64
		want     uint64
	}{
		{name: "zero selects default", maxSteps: 0, want: tools.DefaultMaxSteps},
		{name: "explicit value kept", maxSteps: 42, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Calculator.MaxSteps = tt.maxSteps

			assert.Equal(t, tt.want, cfg.ToolOptions().CalculatorMaxSteps)
			assert.Equal(t, tt.maxSteps, cfg.Calculator.MaxSteps)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("overrides defaults", func(t *testing.T) {
		path := filepath.Join(dir, "server.yaml")
		content := "name: file-configured-server\nlog_format: json\ncalculator:\n  max_steps: 500\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "file-configured-server", cfg.Name)
		assert.Equal(t, "1.0.0", cfg.Version)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, uint64(500), cfg.Calculator.MaxSteps)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: [unterminated"), 0o600))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: chatty\n"), 0o600))

		_, err := LoadConfig(path)
		var configErr *ConfigError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "log_level", configErr.Field)
	})
}
