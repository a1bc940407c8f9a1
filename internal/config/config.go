package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// looked up in the working directory when --config is not given
const DefaultPath = "subsearch.yaml"

const (
	defaultSimilarityThreshold = 0.8
	defaultTimeWindow          = 5.0
	defaultOutputDir           = "."
)

type Config struct {
	Search SearchConfig `yaml:"search"`
	Dedupe DedupeConfig `yaml:"dedupe"`
	Output OutputConfig `yaml:"output"`
}

type SearchConfig struct {
	CaseSensitive bool `yaml:"case_sensitive"`
}

type DedupeConfig struct {
	Enabled             *bool    `yaml:"enabled"`
	SimilarityThreshold *float64 `yaml:"similarity_threshold"`
	TimeWindow          *float64 `yaml:"time_window"`
	Aggressive          bool     `yaml:"aggressive"`
	Workers             int      `yaml:"workers"`
}

type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Save  *bool  `yaml:"save"`
	Quiet bool   `yaml:"quiet"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional loads path when it exists and falls back to defaults when it
// does not. With explicit set, a missing file is an error.
func LoadOptional(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}

// Validate fills defaults and rejects out-of-range values.
func (c *Config) Validate() error {
	if c.Dedupe.Enabled == nil {
		c.Dedupe.Enabled = boolPtr(true)
	}
	if c.Dedupe.SimilarityThreshold == nil {
		c.Dedupe.SimilarityThreshold = floatPtr(defaultSimilarityThreshold)
	}
	if c.Dedupe.TimeWindow == nil {
		c.Dedupe.TimeWindow = floatPtr(defaultTimeWindow)
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Save == nil {
		c.Output.Save = boolPtr(true)
	}

	if t := *c.Dedupe.SimilarityThreshold; t < 0 || t > 1 {
		return fmt.Errorf("dedupe.similarity_threshold must be between 0 and 1, got %g", t)
	}
	if w := *c.Dedupe.TimeWindow; w < 0 {
		return fmt.Errorf("dedupe.time_window must not be negative, got %g", w)
	}
	if c.Dedupe.Workers < 0 {
		return fmt.Errorf("dedupe.workers must not be negative, got %d", c.Dedupe.Workers)
	}
	return nil
}

func boolPtr(v bool) *bool {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
