// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all server configuration. The category rule table and its
// location are static configuration: loaded once at startup, never mutated
// at runtime.
type Config struct {
	Port           string
	DBPath         string
	AllowedOrigins []string
	RulesPath      string // optional YAML override of the built-in rule table
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "./data/devtrack.db"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RulesPath:      getEnv("CATEGORY_RULES_PATH", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
