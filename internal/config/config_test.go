package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears every variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		EnvConfigPath,
		"STUDYWISE_DB_PATH", "STUDYWISE_RECORD_NAME", "STUDYWISE_TICK_INTERVAL",
		"STUDYWISE_LOG_LEVEL", "STUDYWISE_LOG_FORMAT",
		"ANTHROPIC_API_KEY", "STUDYWISE_SUMMARIZER_MODEL",
		"STUDYWISE_SUMMARIZER_MAX_TOKENS", "STUDYWISE_SUMMARIZER_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
storage:
  path: "/tmp/study/state.db"
  record_name: "custom-record"

timer:
  tick_interval: "500ms"

log:
  level: "debug"
  format: "json"

summarizer:
  api_key: "sk-test"
  model: "claude-test"
  max_tokens: 512
  timeout: "15s"
`

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".studywise", "studywise.db"), cfg.Storage.Path)
	assert.Equal(t, "studywise-storage", cfg.Storage.RecordName)
	assert.Equal(t, time.Second, cfg.Timer.TickInterval)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Summarizer.Model)
	assert.EqualValues(t, 1024, cfg.Summarizer.MaxTokens)
	assert.Equal(t, time.Minute, cfg.Summarizer.Timeout)
	assert.False(t, cfg.Summarizer.Enabled())
}

func TestLoad_ExplicitYAML(t *testing.T) {
	isolate(t)
	t.Setenv(EnvConfigPath, writeYAML(t, t.TempDir(), validYAML))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/study/state.db", cfg.Storage.Path)
	assert.Equal(t, "custom-record", cfg.Storage.RecordName)
	assert.Equal(t, 500*time.Millisecond, cfg.Timer.TickInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "claude-test", cfg.Summarizer.Model)
	assert.EqualValues(t, 512, cfg.Summarizer.MaxTokens)
	assert.Equal(t, 15*time.Second, cfg.Summarizer.Timeout)
	assert.True(t, cfg.Summarizer.Enabled())
}

func TestLoad_DefaultFileInDataDir(t *testing.T) {
	home := isolate(t)
	writeYAML(t, filepath.Join(home, ".studywise"), "log:\n  level: \"error\"\n")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	isolate(t)
	t.Setenv(EnvConfigPath, writeYAML(t, t.TempDir(), validYAML))
	t.Setenv("STUDYWISE_TICK_INTERVAL", "2s")
	t.Setenv("STUDYWISE_LOG_LEVEL", "info")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Timer.TickInterval)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	t.Setenv(EnvConfigPath, "/nonexistent/config.yaml")

	_, err := Load()

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage:    StorageConfig{Path: "x.db", RecordName: "r"},
			Timer:      TimerConfig{TickInterval: time.Second},
			Log:        LogConfig{Level: "info", Format: "JSON"},
			Summarizer: SummarizerConfig{MaxTokens: 1, Timeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty record name", func(c *Config) { c.Storage.RecordName = " " }, true},
		{"zero tick", func(c *Config) { c.Timer.TickInterval = 0 }, true},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"zero max tokens", func(c *Config) { c.Summarizer.MaxTokens = 0 }, true},
		{"negative timeout", func(c *Config) { c.Summarizer.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
