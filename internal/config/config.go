// Package config loads sheetplay settings from ~/.config/sheetplay/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "sheetplay"

// OutputConfig selects where notes are sent
type OutputConfig struct {
	Port        string        `yaml:"port,omitempty"`  // MIDI output name prefix; empty means the first port
	Synth       bool          `yaml:"synth,omitempty"` // use the built-in synthesizer instead
	Volume      float64       `yaml:"volume,omitempty"` // built-in synth master volume, 0-1
	SendTimeout time.Duration `yaml:"sendTimeout,omitempty"`
}

// InputConfig configures live mode key sources
type InputConfig struct {
	MIDIPort     string        `yaml:"midiPort,omitempty"`
	ReleaseAfter time.Duration `yaml:"releaseAfter,omitempty"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// VelocityConfig sets note on/off velocities
type VelocityConfig struct {
	On  uint8 `yaml:"on,omitempty"`
	Off uint8 `yaml:"off,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Input    InputConfig    `yaml:"input"`
	Log      LogConfig      `yaml:"log"`
	Velocity VelocityConfig `yaml:"velocity"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			SendTimeout: 50 * time.Millisecond,
			Volume:      0.3,
		},
		Input: InputConfig{
			ReleaseAfter: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Velocity: VelocityConfig{
			On:  100,
			Off: 64,
		},
	}
}

// Dir returns the config directory path
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the full path to config.yaml
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path, or the default path when empty. A missing
// file yields the defaults. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, or the default path when empty
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
