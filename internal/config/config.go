// Package config provides configuration types, defaults, and persistence
// for the xm harness.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zyndor/xm/internal/log"
	"github.com/zyndor/xm/internal/tracing"
)

// HistoryConfig holds run history persistence options.
type HistoryConfig struct {
	// Enabled controls whether run outcomes are recorded.
	Enabled bool `mapstructure:"enabled"`

	// Path is the history database location.
	// Default: ~/.config/xm/history.db
	Path string `mapstructure:"path"`
}

// Config holds all configuration options for xm.
type Config struct {
	// Filter is the default test filter applied when no --filter flag is given.
	Filter string `mapstructure:"filter"`

	// NoColor disables ANSI colors in the report regardless of terminal support.
	NoColor bool `mapstructure:"no_color"`

	// Debug enables debug logging to DebugLog.
	Debug bool `mapstructure:"debug"`

	// DebugLog is the debug log file location.
	// Default: ~/.config/xm/debug.log
	DebugLog string `mapstructure:"debug_log"`

	History HistoryConfig  `mapstructure:"history"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// DefaultHistoryPath returns the default history database location, or empty
// string if the home directory is unavailable.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "xm", "history.db")
}

// DefaultDebugLogPath returns the default debug log location, or empty
// string if the home directory is unavailable.
func DefaultDebugLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "xm", "debug.log")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Filter:   "",
		NoColor:  false,
		Debug:    false,
		DebugLog: DefaultDebugLogPath(),
		History: HistoryConfig{
			Enabled: false,
			Path:    DefaultHistoryPath(),
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the configuration for errors. Empty values use defaults
// and are always valid.
func Validate(cfg Config) error {
	if cfg.Tracing.SampleRate < 0.0 || cfg.Tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", cfg.Tracing.SampleRate)
	}

	switch cfg.Tracing.Exporter {
	case "", "none", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"stdout\", or \"otlp\", got %q", cfg.Tracing.Exporter)
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == "otlp" && cfg.Tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	if cfg.History.Enabled && cfg.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# xm Configuration

# Default test filter, applied when no --filter flag is given.
# Syntax: include1[:include2...][-exclude1[:exclude2...]]
# Patterns support '*' wildcards and match whole test identifiers.
# Examples:
#   filter: "Math*"            # only tests whose identifier starts with Math
#   filter: "*-*_slow*"        # everything except identifiers containing _slow
filter: ""

# Disable ANSI colors in the report regardless of terminal support.
no_color: false

# Debug logging
debug: false
# debug_log: ~/.config/xm/debug.log

# Run history - records each run and its results to a local SQLite database.
# Inspect past runs with 'xm history'.
history:
  enabled: false
  # path: ~/.config/xm/history.db

# Distributed tracing - emits one span per executed test.
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: none                 # Export backend: none, stdout, otlp
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0
#   service_name: xm
#
# Example: send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
