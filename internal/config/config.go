// Package config loads server settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/BanTheRewind/learn-by-ai/internal/domain"
)

// Config holds the process settings.
type Config struct {
	Addr          string
	ThinkDelay    time.Duration
	LogLevel      string
	LogFile       string
	DefaultHumans int
}

// rawConfig mirrors the file; durations are parsed separately.
type rawConfig struct {
	Addr          string `yaml:"addr"`
	ThinkDelay    string `yaml:"think_delay"`
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	DefaultHumans *int   `yaml:"default_humans"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":8080",
		ThinkDelay:    500 * time.Millisecond,
		LogLevel:      "info",
		DefaultHumans: 1,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	var raw rawConfig
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.Addr != "" {
		cfg.Addr = raw.Addr
	}
	if raw.ThinkDelay != "" {
		d, err := time.ParseDuration(raw.ThinkDelay)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: think_delay: %w", err)
		}
		cfg.ThinkDelay = d
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	cfg.LogFile = raw.LogFile
	if raw.DefaultHumans != nil {
		cfg.DefaultHumans = *raw.DefaultHumans
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	if c.ThinkDelay <= 0 {
		return fmt.Errorf("config: think_delay must be positive, got %s", c.ThinkDelay)
	}
	if c.DefaultHumans < 0 || c.DefaultHumans > domain.Seats {
		return fmt.Errorf("config: default_humans must be between 0 and %d, got %d", domain.Seats, c.DefaultHumans)
	}
	return nil
}
