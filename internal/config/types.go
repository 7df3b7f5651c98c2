package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultStore     = "file"
	DefaultTheme     = "dark"
	DefaultLogDir    = "~/.tasklane/logs"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultMouse     = true
)

// Config holds the full configuration for tasklane.
type Config struct {
	// Storage backend: file, sqlite or memory
	Store string `toml:"store"`
	// Data is the store location: a directory for the file backend,
	// a database file for sqlite. Empty means inside .tasklane.
	Data string `toml:"data"`

	// Theme used until one is saved
	Theme string `toml:"theme"`

	// Mouse enables click and drag in the TUI
	Mouse bool `toml:"mouse"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// WriteTOML writes the configuration in config-file form.
func (c *Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"store",
		"data",
		"theme",
		"mouse",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Store = DefaultStore
	cfg.Data = ""
	cfg.Theme = DefaultTheme
	cfg.Mouse = DefaultMouse
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
