// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Document  string `json:"document,omitempty"`   // CV document file (.json, .yaml)
	OutputDir string `json:"output_dir,omitempty"` // Directory exported PDFs are written to

	// Rendering
	Template      string `json:"template,omitempty"`       // classic, modern or minimal
	ChromePath    string `json:"chrome_path,omitempty"`    // Chrome/Chromium binary
	Headful       bool   `json:"headful,omitempty"`        // Show the browser window while rendering
	RenderTimeout string `json:"render_timeout,omitempty"` // Go duration; empty or "0" disables the timeout

	// Server
	Port       int    `json:"port,omitempty"`
	CORSOrigin string `json:"cors_origin,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		OutputDir:  ".",
		Template:   string(types.DefaultTemplate),
		Port:       8080,
		CORSOrigin: "*",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands after merging.
func (c *Config) Validate() error {
	if c.Template != "" {
		if _, err := types.ParseTemplate(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if _, err := c.RenderTimeoutDuration(); err != nil {
		return err
	}

	if c.Document != "" {
		if _, err := os.Stat(c.Document); os.IsNotExist(err) {
			return fmt.Errorf("config error: document file not found: %s", c.Document)
		}
	}

	return nil
}

// RenderTimeoutDuration parses RenderTimeout. Zero means no timeout.
func (c *Config) RenderTimeoutDuration() (time.Duration, error) {
	if c.RenderTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RenderTimeout)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'render_timeout' %q: %w", c.RenderTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'render_timeout' must be non-negative")
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Document == "" {
		result.Document = defaults.Document
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.RenderTimeout == "" {
		result.RenderTimeout = defaults.RenderTimeout
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
