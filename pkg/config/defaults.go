package config

import (
	"time"

	"radiomesh-hq/warden/pkg/guardrail"
	"radiomesh-hq/warden/pkg/schedule"
)

// DefaultConfig returns a configuration with every field at its default.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in defaults for any zero-valued field.
func ApplyDefaults(cfg *Config) {
	if cfg.Guardrail.ChangeBudgetMinutes == 0 {
		cfg.Guardrail.ChangeBudgetMinutes = guardrail.DefaultChangeBudgetMinutes
	}
	if cfg.Guardrail.HysteresisThresholdDB == 0 {
		cfg.Guardrail.HysteresisThresholdDB = guardrail.DefaultHysteresisThresholdDB
	}

	if cfg.PeakHours.Timezone == "" && cfg.PeakHours.StartHour == 0 && cfg.PeakHours.EndHour == 0 {
		cfg.PeakHours = *schedule.DefaultPeakHours()
	}
	if cfg.PeakHours.Timezone == "" {
		cfg.PeakHours.Timezone = "UTC"
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "memory"
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = "warden.db"
	}
	if cfg.Storage.BusyTimeout == 0 {
		cfg.Storage.BusyTimeout = 5 * time.Second
	}

	if cfg.Journal.MaxRecords == 0 {
		cfg.Journal.MaxRecords = 10000
	}
	if cfg.Journal.RetentionDays == 0 {
		cfg.Journal.RetentionDays = 30
	}
	if cfg.Journal.PruneSchedule == "" {
		cfg.Journal.PruneSchedule = "0 3 * * *"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
