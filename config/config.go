// Package config provides configuration loading and management for owl2step.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/owl2step/schema"
)

// Config represents the complete owl2step configuration
type Config struct {
	Schema  SchemaConfig  `yaml:"schema"`
	Convert ConvertConfig `yaml:"convert"`
	Log     LogConfig     `yaml:"log"`
	Watch   WatchConfig   `yaml:"watch"`
}

// SchemaConfig configures the schema fact-base location
type SchemaConfig struct {
	// Dir is the directory holding one fact-base document per IFC
	// version, named "<label>.yaml"
	Dir string `yaml:"dir"`
}

// ConvertConfig configures conversion behavior
type ConvertConfig struct {
	// Version forces an ontology version instead of detecting it from
	// the model's owl:imports declaration (e.g. "IFC4")
	Version string `yaml:"version"`
}

// LogConfig configures diagnostic output
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `yaml:"level"`
}

// WatchConfig configures the file watcher
type WatchConfig struct {
	// Enabled keeps the process running and reconverts inputs on change
	Enabled bool `yaml:"enabled"`
	// DebounceDelay is how long to wait after the last write event
	// before reconverting
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Schema: SchemaConfig{
			Dir: "schemas",
		},
		Convert: ConvertConfig{
			Version: "", // Detect from owl:imports
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Enabled:       false,
			DebounceDelay: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Schema.Dir == "" {
		return fmt.Errorf("schema.dir is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Convert.Version != "" && !schema.Version(c.Convert.Version).Valid() {
		return fmt.Errorf("convert.version %q is not a supported IFC version", c.Convert.Version)
	}
	if c.Watch.DebounceDelay < 0 {
		return fmt.Errorf("watch.debounce_delay must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Schema
	if other.Schema.Dir != "" {
		c.Schema.Dir = other.Schema.Dir
	}

	// Convert
	if other.Convert.Version != "" {
		c.Convert.Version = other.Convert.Version
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	// Watch
	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
}
