package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file, applies defaults, applies
// WARDEN_* environment variable overrides, and validates the result.
// Environment variables always take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format WARDEN_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("WARDEN_GUARDRAIL_CHANGE_BUDGET_MINUTES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Guardrail.ChangeBudgetMinutes = n
		}
	}
	if val := os.Getenv("WARDEN_GUARDRAIL_HYSTERESIS_THRESHOLD_DB"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Guardrail.HysteresisThresholdDB = n
		}
	}
	if val := os.Getenv("WARDEN_STORAGE_BACKEND"); val != "" {
		cfg.Storage.Backend = val
	}
	if val := os.Getenv("WARDEN_STORAGE_DB_PATH"); val != "" {
		cfg.Storage.DBPath = val
	}
	if val := os.Getenv("WARDEN_STORAGE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Storage.BusyTimeout = d
		}
	}
	if val := os.Getenv("WARDEN_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("WARDEN_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
