// Package config provides configuration loading for dframe. Parse
// settings live in a small YAML document with environment variable
// substitution, so the same file works across machines.
package config

import (
	"fmt"
	"runtime"
)

// ParseConfig configures one parse invocation.
type ParseConfig struct {
	// Path is the CSV file to parse.
	Path string `yaml:"path" json:"path"`

	// Shards is the number of parallel workers. 0 means one worker
	// per CPU.
	Shards int `yaml:"shards" json:"shards"`

	// Preview is how many leading rows the CLI prints after a parse.
	Preview int `yaml:"preview" json:"preview"`

	// LogLevel sets the logger verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Export configures optional table export.
	Export ExportConfig `yaml:"export" json:"export"`
}

// ExportConfig configures table export.
type ExportConfig struct {
	// Output is the destination file; "-" or empty means stdout.
	Output string `yaml:"output" json:"output"`

	// Pretty enables indented JSON.
	Pretty bool `yaml:"pretty" json:"pretty"`

	// Gzip compresses the output stream.
	Gzip bool `yaml:"gzip" json:"gzip"`
}

// NewParseConfig returns a config with defaults applied.
func NewParseConfig(path string) *ParseConfig {
	return &ParseConfig{
		Path:     path,
		Shards:   runtime.NumCPU(),
		Preview:  10,
		LogLevel: "info",
	}
}

// Validate checks the config and fills in defaults for zero values.
func (c *ParseConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.Shards < 0 {
		return fmt.Errorf("shards must be non-negative, got %d", c.Shards)
	}
	if c.Shards == 0 {
		c.Shards = runtime.NumCPU()
	}
	if c.Preview < 0 {
		return fmt.Errorf("preview must be non-negative, got %d", c.Preview)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}
