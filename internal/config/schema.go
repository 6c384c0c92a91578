package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version    int              `yaml:"version"`
	Paths      PathsConfig      `yaml:"paths"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Watch      WatchConfig      `yaml:"watch"`
	Log        LogConfig        `yaml:"log"`
	AllowEmpty bool             `yaml:"allow_empty"` // build even when the skills index has no items
}

// PathsConfig locates the input index, the outputs and description files
type PathsConfig struct {
	Index      string `yaml:"index"`                 // skills index JSON
	Output     string `yaml:"output"`                // category index JSON
	YAMLOutput string `yaml:"yaml_output,omitempty"` // optional YAML copy of the category index
	DataRoot   string `yaml:"data_root"`             // description references resolve against this
}

// ClassifierConfig tunes the classification run
type ClassifierConfig struct {
	DescriptionBudget int `yaml:"description_budget"` // runes read from a description
	Workers           int `yaml:"workers"`            // 0 = GOMAXPROCS
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"` // empty disables persistence
}

// ServerConfig holds HTTP settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// WatchConfig controls rebuilding when the skills index changes
type WatchConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Debounce Duration `yaml:"debounce"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
