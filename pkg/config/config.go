package config

import (
	"fmt"
	"os"

	"github.com/eightball-ai/eightball/pkg/models"
	"gopkg.in/yaml.v3"
)

// Config holds all eightball configuration.
type Config struct {
	Listen    string               `yaml:"listen"`
	Store     StoreConfig          `yaml:"store"`
	Generator GeneratorConfig      `yaml:"generator"`
	History   models.HistoryConfig `yaml:"history"`
}

// StoreConfig selects and configures the answer store backend.
// Backend is "sqlite" (default) or "redis".
type StoreConfig struct {
	Backend  string `yaml:"backend"`
	DBPath   string `yaml:"db_path"`
	RedisURL string `yaml:"redis_url"`
}

// GeneratorConfig points at the completion endpoint and fixes its sampling.
type GeneratorConfig struct {
	URL       string                 `yaml:"url"`
	Inference models.InferenceConfig `yaml:"inference"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		Store: StoreConfig{
			Backend: "sqlite",
			DBPath:  "eightball.db",
		},
		Generator: GeneratorConfig{
			URL: "http://127.0.0.1:8081",
			Inference: models.InferenceConfig{
				MaxTokens:     20,
				RepeatPenalty: 1.5,
				RepeatLastN:   20,
				Temperature:   0.25,
				TopK:          5,
				TopP:          0.25,
			},
		},
		History: models.HistoryConfig{
			Enabled:       false,
			DBPath:        "eightball.db",
			RetentionDays: 90,
		},
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Store.Backend != "sqlite" && cfg.Store.Backend != "redis" {
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	return cfg, nil
}
