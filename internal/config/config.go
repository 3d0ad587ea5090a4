// Package config provides configuration loading and validation for the marketplace service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Matching
	MatchPolicy     string `json:"match_policy,omitempty"`      // "weighted" or "percentage"
	MatchLimit      int    `json:"match_limit,omitempty"`       // Default top-N for match endpoints
	HardTradeFilter bool   `json:"hard_trade_filter,omitempty"` // Strict legacy trade eligibility
	WeightTablePath string `json:"weight_table,omitempty"`      // JSON weight-table override for the weighted policy

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.MatchLimit < 0 {
		return fmt.Errorf("config error: 'match_limit' must be non-negative")
	}
	if c.MatchPolicy != "" && c.MatchPolicy != "weighted" && c.MatchPolicy != "percentage" {
		return fmt.Errorf("config error: unknown 'match_policy': %q", c.MatchPolicy)
	}
	if c.WeightTablePath != "" {
		if _, err := os.Stat(c.WeightTablePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: weight table file not found: %s", c.WeightTablePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags and environment variables.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.MatchPolicy == "" {
		result.MatchPolicy = defaults.MatchPolicy
	}
	if result.WeightTablePath == "" {
		result.WeightTablePath = defaults.WeightTablePath
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MatchLimit == 0 {
		if defaults.MatchLimit > 0 {
			result.MatchLimit = defaults.MatchLimit
		} else {
			result.MatchLimit = 10
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
