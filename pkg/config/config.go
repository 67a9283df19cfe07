// Package config holds the persisted application settings, including
// the default report sink that the original command-line flag can
// override per run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the application configuration
type Config struct {
	Report  ReportConfig  `yaml:"report"`
	Probe   ProbeConfig   `yaml:"probe"`
	Logging LoggingConfig `yaml:"logging"`
}

// ReportConfig holds report-related settings
type ReportConfig struct {
	// DefaultOutput is the sink used when no --output flag is given
	DefaultOutput string `yaml:"default_output"`
	// SampleCap bounds the example entries kept per directory
	SampleCap int `yaml:"sample_cap"`
}

// ProbeConfig holds probe invocation settings
type ProbeConfig struct {
	Path   string `yaml:"path"`   // probe executable
	Helper string `yaml:"helper"` // non-interactive auth helper
	// Timeout is a duration string ("30m", "2h"); empty means none
	Timeout string `yaml:"timeout"`
}

// TimeoutDuration parses the configured probe timeout
func (p ProbeConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(p.Timeout)
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Report: ReportConfig{
			DefaultOutput: filepath.Join(home, "treecompare_report.txt"),
			SampleCap:     5,
		},
		Probe: ProbeConfig{
			Path:   "rsync",
			Helper: "sshpass",
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// ValidationError reports an invalid configuration field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config field %s: %s", e.Field, e.Message)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Report.SampleCap < 0 {
		return &ValidationError{
			Field:   "report.sample_cap",
			Message: "must not be negative",
		}
	}

	if c.Report.DefaultOutput == "" {
		return &ValidationError{
			Field:   "report.default_output",
			Message: "must not be empty",
		}
	}

	if c.Probe.Path == "" {
		return &ValidationError{
			Field:   "probe.path",
			Message: "must not be empty",
		}
	}

	if d, err := c.Probe.TimeoutDuration(); err != nil || d < 0 {
		return &ValidationError{
			Field:   "probe.timeout",
			Message: "must be a non-negative duration such as '30m'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
