package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by FromEnv.
const (
	EnvPort          = "CV_BUILDER_PORT"
	EnvOutputDir     = "CV_BUILDER_OUTPUT_DIR"
	EnvTemplate      = "CV_BUILDER_TEMPLATE"
	EnvRenderTimeout = "CV_BUILDER_RENDER_TIMEOUT"
	EnvCORSOrigin    = "CV_BUILDER_CORS_ORIGIN"
	EnvChromePath    = "CHROME_PATH"
)

// FromEnv builds a Config from environment variables. Unset variables leave fields empty
// so the result can be merged over file and built-in defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		OutputDir:     os.Getenv(EnvOutputDir),
		Template:      os.Getenv(EnvTemplate),
		RenderTimeout: os.Getenv(EnvRenderTimeout),
		CORSOrigin:    os.Getenv(EnvCORSOrigin),
		ChromePath:    os.Getenv(EnvChromePath),
	}

	if portStr := os.Getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a valid integer: %w", EnvPort, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// Resolve layers configuration sources: explicit values win over the environment, the
// environment over the config file and the file over built-in defaults.
func Resolve(explicit Config, file *Config) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	base := Defaults()
	if file != nil {
		base = file.MergeWithDefaults(base)
	}
	merged := env.MergeWithDefaults(base)
	merged = explicit.MergeWithDefaults(merged)

	// Bools only ever switch on.
	merged.Verbose = explicit.Verbose || (file != nil && file.Verbose)
	merged.Headful = explicit.Headful || (file != nil && file.Headful)

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
