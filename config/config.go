package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shaharia-lab/toolserver/observability"
	"github.com/shaharia-lab/toolserver/tools"
)

// Config holds the configuration for the tool server
type Config struct {
	// Server information returned on initialize
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`

	// Logging configuration; logs always go to stderr
	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`

	Calculator CalculatorConfig `yaml:"calculator" json:"calculator"`
}

// CalculatorConfig tunes the calculate tool.
type CalculatorConfig struct {
	MaxSteps uint64 `yaml:"max_steps" json:"max_steps"`
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field '%s': %s", e.Field, e.Message)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Name:      "toolserver",
		Version:   "1.0.0",
		LogLevel:  "info",
		LogFormat: observability.FormatText,
		Calculator: CalculatorConfig{
			MaxSteps: tools.DefaultMaxSteps,
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Name == "" {
		return &ConfigError{Field: "name", Message: "server name is required"}
	}

	if c.Version == "" {
		return &ConfigError{Field: "version", Message: "server version is required"}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "log_level", Message: fmt.Sprintf("unsupported log level %q", c.LogLevel)}
	}

	switch c.LogFormat {
	case observability.FormatText, observability.FormatJSON:
	default:
		return &ConfigError{Field: "log_format", Message: fmt.Sprintf("unsupported log format %q", c.LogFormat)}
	}

	return nil
}

// ToolOptions maps the configuration onto the built-in tool options. A zero
// max_steps selects tools.DefaultMaxSteps.
func (c *Config) ToolOptions() tools.Options {
	maxSteps := c.Calculator.MaxSteps
	if maxSteps == 0 {
		maxSteps = tools.DefaultMaxSteps
	}
	return tools.Options{CalculatorMaxSteps: maxSteps}
}
