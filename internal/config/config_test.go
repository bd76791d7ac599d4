package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("kioku", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Root)
	assert.Equal(t, filepath.Join(Dir(), "kioku.db"), cfg.DB)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Zero(t, cfg.Seed)
	assert.False(t, cfg.Commit)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "root: /decks\nlog_level: debug\nseed: 42\ncommit: true\n")

	cfg, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "/decks", cfg.Root)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.True(t, cfg.Commit)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "root: /decks\nlog_format: text\n")
	t.Setenv("KIOKU_ROOT", "/from-env")
	t.Setenv("KIOKU_LOG_FORMAT", "json")

	cfg, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "/from-env", cfg.Root)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	path := writeConfig(t, "root: /decks\n")
	t.Setenv("KIOKU_ROOT", "/from-env")

	cfg, err := Load(newFlags(t, "--config", path, "--root", "/from-flag", "--log-level", "error"))
	require.NoError(t, err)
	assert.Equal(t, "/from-flag", cfg.Root)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log level", []string{"--log-level", "loud"}},
		{"log format", []string{"--log-format", "xml"}},
		{"empty db", []string{"--db", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			_, err := Load(newFlags(t, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: "info", LogFormat: "json"}.Logger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "deck", "french")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"deck":"french"`)
}
