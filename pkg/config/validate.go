package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Guardrail.ChangeBudgetMinutes <= 0 {
		return fmt.Errorf("guardrail.change_budget_minutes must be positive, got %d",
			cfg.Guardrail.ChangeBudgetMinutes)
	}
	if cfg.Guardrail.HysteresisThresholdDB <= 0 {
		return fmt.Errorf("guardrail.hysteresis_threshold_db must be positive, got %d",
			cfg.Guardrail.HysteresisThresholdDB)
	}

	if cfg.PeakHours.StartHour < 0 || cfg.PeakHours.StartHour > 23 {
		return fmt.Errorf("peak_hours.start_hour must be 0-23, got %d", cfg.PeakHours.StartHour)
	}
	if cfg.PeakHours.EndHour < 0 || cfg.PeakHours.EndHour > 23 {
		return fmt.Errorf("peak_hours.end_hour must be 0-23, got %d", cfg.PeakHours.EndHour)
	}
	for _, day := range cfg.PeakHours.DaysOfWeek {
		if day < 1 || day > 7 {
			return fmt.Errorf("peak_hours.days_of_week entries must be 1-7, got %d", day)
		}
	}

	switch cfg.Storage.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", "memory", "sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == "sqlite" && cfg.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required for the sqlite backend")
	}

	if cfg.Journal.MaxRecords <= 0 {
		return fmt.Errorf("journal.max_records must be positive, got %d", cfg.Journal.MaxRecords)
	}
	if cfg.Journal.RetentionDays <= 0 {
		return fmt.Errorf("journal.retention_days must be positive, got %d", cfg.Journal.RetentionDays)
	}
	if cfg.Journal.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Journal.PruneSchedule); err != nil {
			return fmt.Errorf("journal.prune_schedule is not a valid cron expression: %w", err)
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", "json", "text", cfg.Logging.Format)
	}

	return nil
}
