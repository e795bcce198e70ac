// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// Output settings
	OutputDir string

	// Audit settings
	MaxAuditExamples int

	// Plot settings
	MaxHistogramColumns int

	// Workers for per-column profiling; 0 means use runtime.NumCPU()
	ProfileWorkers int

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		OutputDir:           getEnv("INSIGHTS_OUTPUT_DIR", "reports"),
		MaxAuditExamples:    getEnvAsInt("INSIGHTS_MAX_AUDIT_EXAMPLES", 5),
		MaxHistogramColumns: getEnvAsInt("INSIGHTS_MAX_HISTOGRAM_COLUMNS", 6),
		ProfileWorkers:      getEnvAsInt("INSIGHTS_PROFILE_WORKERS", 0),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.MaxAuditExamples <= 0 {
		return errors.New("max audit examples must be positive")
	}

	if c.MaxHistogramColumns <= 0 {
		return errors.New("max histogram columns must be positive")
	}

	if c.ProfileWorkers < 0 {
		return errors.New("profile workers cannot be negative")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
