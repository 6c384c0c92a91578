// Package config provides configuration management for skillindex.
//
// Config file locations (priority order):
//  1. $SKILLINDEX_CONFIG
//  2. ./skillindex.yaml
//  3. ~/.config/skillindex/config.yaml
//  4. /etc/skillindex/config.yaml
//
// A missing config file is not an error; defaults mirror the repository
// layout the website build expects (data/skills_index.json in,
// data/skills_category_index.json out).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for a fresh checkout
const (
	DefaultIndexPath         = "data/skills_index.json"
	DefaultOutputPath        = "data/skills_category_index.json"
	DefaultDataRoot          = "."
	DefaultDescriptionBudget = 2000
	DefaultDatabasePath      = "./skillindex.db"
	DefaultAddr              = ":3000"
	DefaultDebounce          = 500 * time.Millisecond
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Paths.Index == "" {
		c.Paths.Index = DefaultIndexPath
	}
	if c.Paths.Output == "" {
		c.Paths.Output = DefaultOutputPath
	}
	if c.Paths.DataRoot == "" {
		c.Paths.DataRoot = DefaultDataRoot
	}
	if c.Classifier.DescriptionBudget == 0 {
		c.Classifier.DescriptionBudget = DefaultDescriptionBudget
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(DefaultDebounce)
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	// Database.Path is left alone: empty means "no persistence"
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Paths.Index == "" {
		return fmt.Errorf("paths.index is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Classifier.DescriptionBudget < 0 {
		return fmt.Errorf("classifier.description_budget must not be negative")
	}
	if c.Classifier.Workers < 0 {
		return fmt.Errorf("classifier.workers must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// PersistenceEnabled reports whether runs are recorded in a database
func (c *Config) PersistenceEnabled() bool {
	return c.Database.Path != ""
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	db := c.Database.Path
	if db == "" {
		db = "disabled"
	}
	return fmt.Sprintf("Index: %s, Output: %s, Data root: %s, Database: %s, Workers: %d",
		c.Paths.Index, c.Paths.Output, c.Paths.DataRoot, db, c.Classifier.Workers)
}
