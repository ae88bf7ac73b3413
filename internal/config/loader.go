package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfigPath names the environment variable pointing at the YAML file.
const EnvConfigPath = "STUDYWISE_CONFIG"

// DataDir returns the directory holding the database and default config file.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home dir: %w", err)
	}
	return filepath.Join(home, ".studywise"), nil
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is taken from STUDYWISE_CONFIG (fallback
// ~/.studywise/config.yaml). A missing fallback file is not an error;
// a missing explicit file is.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv(EnvConfigPath)
	explicitPath := path != ""
	if !explicitPath {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		// No file, load from ENV + defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.Storage.Path == "" {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		cfg.Storage.Path = filepath.Join(dir, "studywise.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
