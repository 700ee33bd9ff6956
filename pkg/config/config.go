package config

import (
	"time"

	"radiomesh-hq/warden/pkg/guardrail"
	"radiomesh-hq/warden/pkg/schedule"
)

// Config is the root configuration structure for warden.
type Config struct {
	// Guardrail contains the tunable policy parameters for the rule chain.
	Guardrail guardrail.Limits `yaml:"guardrail"`

	// PeakHours defines the window callers use to compute the peak-hour
	// flag. The evaluator itself only sees the flag.
	PeakHours schedule.PeakHours `yaml:"peak_hours"`

	// Storage selects and configures the state backend.
	Storage StorageConfig `yaml:"storage"`

	// Journal configures the decision journal and its retention.
	Journal JournalConfig `yaml:"journal"`

	// Logging configures structured log output.
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects the state store backend.
type StorageConfig struct {
	// Backend is "memory" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// DBPath is the SQLite database file path (backend=sqlite).
	// Default: "warden.db"
	DBPath string `yaml:"db_path"`

	// BusyTimeout is how long SQLite waits for locks before failing.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// JournalConfig configures the decision journal.
type JournalConfig struct {
	// Disabled turns off verdict journaling. Journaling is on by default.
	Disabled bool `yaml:"disabled"`

	// MaxRecords bounds the journal; oldest records are dropped first.
	// Default: 10000
	MaxRecords int `yaml:"max_records"`

	// RetentionDays is how many days of records the pruner keeps.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a cron expression for automatic pruning.
	// Empty disables scheduled pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "text"
	Format string `yaml:"format"`
}
