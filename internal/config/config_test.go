package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Empty(t, cfg.Filter, "no filter by default")
	require.False(t, cfg.NoColor)
	require.False(t, cfg.Debug)
	require.False(t, cfg.History.Enabled, "history disabled by default")
	require.False(t, cfg.Tracing.Enabled, "tracing disabled by default")
	require.NoError(t, Validate(cfg), "defaults must validate")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "sample rate too high",
			mutate:  func(c *Config) { c.Tracing.SampleRate = 1.5 },
			wantErr: "sample_rate",
		},
		{
			name:    "sample rate negative",
			mutate:  func(c *Config) { c.Tracing.SampleRate = -0.1 },
			wantErr: "sample_rate",
		},
		{
			name:    "unknown exporter",
			mutate:  func(c *Config) { c.Tracing.Exporter = "jaeger" },
			wantErr: "tracing.exporter",
		},
		{
			name: "otlp without endpoint",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Exporter = "otlp"
				c.Tracing.OTLPEndpoint = ""
			},
			wantErr: "otlp_endpoint",
		},
		{
			name: "history enabled without path",
			mutate: func(c *Config) {
				c.History.Enabled = true
				c.History.Path = ""
			},
			wantErr: "history.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDefaultConfigTemplate_ParsesAsYAML(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))
	require.Contains(t, parsed, "filter")
	require.Contains(t, parsed, "history")
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestSaveFilter_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveFilter(path, "Math*-*_slow*"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	require.Equal(t, "Math*-*_slow*", parsed["filter"])
}

func TestSaveFilter_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveFilter(path, "A*"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	require.Equal(t, "A*", parsed["filter"])
	require.Contains(t, parsed, "history", "other sections must survive the update")

	// Comments from the template survive the node-level edit.
	require.True(t, strings.Contains(string(data), "# xm Configuration"))
}

func TestSaveFilter_ReplacesExistingValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveFilter(path, "first"))
	require.NoError(t, SaveFilter(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	require.Equal(t, "second", parsed["filter"])
}
