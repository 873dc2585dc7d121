// Package config loads the settings of the paraccum command from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/exascience/paraccum/parallel"
)

// ErrInvalidConfig is returned when a config document cannot be decoded
// or holds out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds reduction and logging settings. Zero values mean "use the
// default".
type Config struct {
	Workers   int    `yaml:"workers"`
	Threshold int    `yaml:"threshold"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the settings used when no file and no flags are given.
func Default() Config {
	return Config{
		Threshold: parallel.DefaultThreshold,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load reads a YAML document from r and merges it over Default.
// Unknown keys are rejected.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// LoadFile reads the YAML file at path. An empty path yields Default.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return Load(bytes.NewReader(data))
}

// Validate rejects negative worker counts and thresholds below 1.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}

	if c.Threshold < 1 {
		return fmt.Errorf("%w: threshold must be at least 1, got %d", ErrInvalidConfig, c.Threshold)
	}

	return nil
}

// Options converts the settings into reduction options.
func (c Config) Options() []parallel.Option {
	opts := []parallel.Option{parallel.Threshold(c.Threshold)}
	if c.Workers > 0 {
		opts = append(opts, parallel.Workers(c.Workers))
	}

	return opts
}
