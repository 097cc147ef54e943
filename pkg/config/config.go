package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Ollo configuration.
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	Cache    CacheConfig   `yaml:"cache"`
	History  HistoryConfig `yaml:"history"`
	Batch    BatchConfig   `yaml:"batch"`
	Presets  PresetsConfig `yaml:"presets"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	// Dir enables one-file-per-entry JSON persistence when set.
	Dir string `yaml:"dir"`
}

// HistoryConfig controls query history recording.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// BatchConfig controls concurrent batch queries.
type BatchConfig struct {
	MaxParallel int `yaml:"max_parallel"`
}

// PresetConfig overrides one named sampling preset.
type PresetConfig struct {
	Temperature   *float64       `yaml:"temperature"`
	NumPredict    *int           `yaml:"num_predict"`
	TopK          *int           `yaml:"top_k"`
	TopP          *float64       `yaml:"top_p"`
	RepeatPenalty *float64       `yaml:"repeat_penalty"`
	Timeout       *time.Duration `yaml:"timeout"`
}

// PresetsConfig holds per-preset overrides.
type PresetsConfig struct {
	Fast   PresetConfig `yaml:"fast"`
	Normal PresetConfig `yaml:"normal"`
	Code   PresetConfig `yaml:"code"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Endpoint: "http://localhost:11434",
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        time.Hour,
			MaxEntries: 1000,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "ollo.db",
		},
		Batch: BatchConfig{
			MaxParallel: 4,
		},
	}
}

// Load reads a YAML config file and expands environment variables.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
