package config

import (
	"os"
	"strconv"

	"exprdiff/internal/errors"
)

// Config represents the complete application configuration. Environment
// variables supply defaults; CLI flags override them.
type Config struct {
	Labels LabelConfig
	Output OutputConfig
}

// LabelConfig controls how the group-label column is matched.
type LabelConfig struct {
	Column   string // column name excluded from analysis
	FoldCase bool   // case-insensitive column name match
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Path string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Labels: LabelConfig{
			Column:   getEnvOrDefault("EXPRDIFF_LABEL_COLUMN", "Cell_type"),
			FoldCase: getEnvBoolOrDefault("EXPRDIFF_LABEL_FOLD_CASE", false),
		},
		Output: OutputConfig{
			Path: getEnvOrDefault("EXPRDIFF_OUTPUT", "expression_comparison_results.csv"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Labels.Column == "" {
		return errors.ConfigInvalid("label column name is required")
	}
	if config.Output.Path == "" {
		return errors.ConfigInvalid("output path is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
