package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Timer      TimerConfig      `yaml:"timer"`
	Log        LogConfig        `yaml:"log"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

// StorageConfig holds local persistence settings.
type StorageConfig struct {
	// Path defaults to <data dir>/studywise.db when empty.
	Path       string `yaml:"path"        env:"STUDYWISE_DB_PATH"`
	RecordName string `yaml:"record_name" env:"STUDYWISE_RECORD_NAME" env-default:"studywise-storage"`
}

// TimerConfig holds tick driver settings.
type TimerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" env:"STUDYWISE_TICK_INTERVAL" env-default:"1s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"STUDYWISE_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"STUDYWISE_LOG_FORMAT" env-default:"text"`
}

// SummarizerConfig holds settings for the note summarization service.
type SummarizerConfig struct {
	APIKey    string        `yaml:"api_key"    env:"ANTHROPIC_API_KEY"`
	Model     string        `yaml:"model"      env:"STUDYWISE_SUMMARIZER_MODEL"      env-default:"claude-3-5-haiku-latest"`
	MaxTokens int64         `yaml:"max_tokens" env:"STUDYWISE_SUMMARIZER_MAX_TOKENS" env-default:"1024"`
	Timeout   time.Duration `yaml:"timeout"    env:"STUDYWISE_SUMMARIZER_TIMEOUT"    env-default:"60s"`
}

// Enabled reports whether an API key is configured.
func (c SummarizerConfig) Enabled() bool {
	return c.APIKey != ""
}
