package journal

import (
	"log/slog"
	"time"
)

// Pruner removes journal records older than the retention period.
type Pruner struct {
	recorder *Recorder
	config   PrunerConfig
	logger   *slog.Logger
}

// PrunerConfig configures retention pruning.
type PrunerConfig struct {
	// RetentionPeriod is how long records are kept.
	// Default: 30 days.
	RetentionPeriod time.Duration

	// PruneSchedule is a cron expression for automatic pruning
	// (e.g. "0 3 * * *" for daily at 3 AM). Empty disables the Scheduler.
	PruneSchedule string
}

// NewPruner creates a pruner over the given recorder.
func NewPruner(recorder *Recorder, cfg PrunerConfig) *Pruner {
	if cfg.RetentionPeriod == 0 {
		cfg.RetentionPeriod = 30 * 24 * time.Hour
	}
	return &Pruner{
		recorder: recorder,
		config:   cfg,
		logger:   slog.Default().With("component", "journal.pruner"),
	}
}

// Prune removes records outside the retention period and returns how many
// were removed.
func (p *Pruner) Prune() int {
	cutoff := time.Now().Add(-p.config.RetentionPeriod)
	pruned := p.recorder.pruneBefore(cutoff)
	if pruned > 0 {
		p.logger.Info("journal pruned",
			"records_removed", pruned,
			"retention", p.config.RetentionPeriod,
		)
	}
	return pruned
}
