// Package config loads server configuration from an optional YAML file with
// environment variable overrides. Environment always wins, so deployments can
// keep secrets out of the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Gemini struct {
		APIKey         string `yaml:"api_key"`
		Model          string `yaml:"model"`
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"gemini"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Database.Path = "tipline.db"
	cfg.Gemini.Model = "gemini-2.0-flash"
	cfg.Gemini.TimeoutSeconds = 120
	cfg.Log.Level = "info"
	return cfg
}

// Load reads the YAML file at path (skipped when path is empty or missing)
// and applies environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// GeminiTimeout returns the model request timeout as a duration.
func (c *Config) GeminiTimeout() time.Duration {
	if c.Gemini.TimeoutSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.Gemini.TimeoutSeconds) * time.Second
}

// Validate checks the fields the server cannot run without.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api key is required (set TIPLINE_GEMINI_API_KEY or GEMINI_API_KEY)")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

func applyEnv(cfg *Config) {
	setIf(&cfg.Server.Addr, "TIPLINE_ADDR")
	setIf(&cfg.Database.Path, "TIPLINE_DB_PATH")
	setIf(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setIf(&cfg.Gemini.APIKey, "TIPLINE_GEMINI_API_KEY")
	setIf(&cfg.Gemini.Model, "TIPLINE_GEMINI_MODEL")
	setIf(&cfg.Gemini.BaseURL, "TIPLINE_GEMINI_BASE_URL")
	setIf(&cfg.Log.Level, "TIPLINE_LOG_LEVEL")
}

func setIf(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
