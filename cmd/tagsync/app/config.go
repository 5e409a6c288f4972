package app

import (
	"os"
)

// Config holds the CLI configuration: global flags and the logging
// environment. The run configuration itself is loaded per command by
// internal/config.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// ConfigFile is the --config flag.
	ConfigFile string

	// Logging environment
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig reads the logging environment. Flags are applied later by
// UpdateFromFlags once cobra has parsed them.
func LoadConfig() (*Config, error) {
	return &Config{
		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
		NoColor:     os.Getenv("NO_COLOR") != "",
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, configFile string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if configFile != "" {
		c.ConfigFile = configFile
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
