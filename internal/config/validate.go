package config

import (
	"fmt"
	"strings"
)

// Validate performs rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.RecordName) == "" {
		return fmt.Errorf("storage.record_name must not be empty")
	}

	if c.Timer.TickInterval <= 0 {
		return fmt.Errorf("timer.tick_interval must be > 0 (got %v)", c.Timer.TickInterval)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Summarizer.MaxTokens <= 0 {
		return fmt.Errorf("summarizer.max_tokens must be > 0 (got %d)", c.Summarizer.MaxTokens)
	}
	if c.Summarizer.Timeout <= 0 {
		return fmt.Errorf("summarizer.timeout must be > 0 (got %v)", c.Summarizer.Timeout)
	}

	return nil
}
