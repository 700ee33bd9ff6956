package guardrail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"radiomesh-hq/warden/pkg/state"
)

// errNoPersist signals the store callback that the record must be left
// untouched (rejections and no-op acceptances).
var errNoPersist = errors.New("no persist")

// Evaluator runs the guardrail rule chain and applies accepted mutations.
//
// The Evaluator owns no state of its own beyond the tunable limits; all
// records live in the injected store, and each EvaluateAndApply call runs
// its read-evaluate-mutate sequence inside the store's per-id critical
// section. Concurrent requests for different access points proceed in
// parallel; requests for the same access point are serialized, so two
// racing requests can never both be admitted off the same stale timestamp.
type Evaluator struct {
	store state.Store
	rules []Rule

	// limits can be retuned live via SetLimits (e.g. by the config watcher).
	limitsMu sync.RWMutex
	limits   Limits

	logger  *slog.Logger
	metrics *Metrics
	sink    DecisionSink
}

// Config contains configuration for the Evaluator.
type Config struct {
	// Limits are the policy parameters. Zero fields take defaults.
	Limits Limits

	// Logger receives structured verdict logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics receives decision metrics. Optional.
	Metrics *Metrics

	// Sink receives every verdict (e.g. a journal recorder). Optional.
	Sink DecisionSink
}

// NewEvaluator creates an evaluator over the given store.
func NewEvaluator(store state.Store, cfg Config) (*Evaluator, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if cfg.Limits.ChangeBudgetMinutes == 0 {
		cfg.Limits.ChangeBudgetMinutes = DefaultChangeBudgetMinutes
	}
	if cfg.Limits.HysteresisThresholdDB == 0 {
		cfg.Limits.HysteresisThresholdDB = DefaultHysteresisThresholdDB
	}
	if err := validateLimits(cfg.Limits); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Evaluator{
		store:   store,
		rules:   defaultRuleChain(),
		limits:  cfg.Limits,
		logger:  cfg.Logger.With("component", "guardrail"),
		metrics: cfg.Metrics,
		sink:    cfg.Sink,
	}, nil
}

// Limits returns the current policy parameters.
func (e *Evaluator) Limits() Limits {
	e.limitsMu.RLock()
	defer e.limitsMu.RUnlock()
	return e.limits
}

// SetLimits replaces the policy parameters. In-flight evaluations keep the
// snapshot they started with.
func (e *Evaluator) SetLimits(limits Limits) error {
	if err := validateLimits(limits); err != nil {
		return err
	}
	e.limitsMu.Lock()
	e.limits = limits
	e.limitsMu.Unlock()

	e.logger.Info("guardrail limits updated",
		"change_budget_minutes", limits.ChangeBudgetMinutes,
		"hysteresis_threshold_db", limits.HysteresisThresholdDB,
	)
	return nil
}

// Register inserts or replaces the record for id with the initial
// last-change sentinel, so the first real request is never blocked by the
// change budget. Registration is an idempotent overwrite.
func (e *Evaluator) Register(ctx context.Context, id string, channel, powerDB int) error {
	ap := state.NewAccessPoint(id, channel, powerDB, e.Limits().ChangeBudgetMinutes)
	return e.store.Add(ctx, ap)
}

// Lookup returns a copy of the current record for id.
func (e *Evaluator) Lookup(ctx context.Context, id string) (*state.AccessPoint, error) {
	ap, err := e.store.Get(ctx, id)
	if errors.Is(err, state.ErrNotFound) {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownAccessPoint)
	}
	return ap, err
}

// EvaluateAndApply runs the rule chain for one change request and, on full
// acceptance, applies the mutation.
//
// The returned error is non-nil only for lookup or storage failures
// (ErrUnknownAccessPoint when the id has no record); policy rejections are
// reported through the Decision with Allowed=false and the first violated
// rule's reason. No rule is evaluated after the first violation, and the
// store is never touched unless the request is accepted with a real change.
func (e *Evaluator) EvaluateAndApply(ctx context.Context, apID string, req *ChangeRequest, in Inputs) (*Decision, error) {
	if req == nil {
		req = &ChangeRequest{}
	}

	start := time.Now()
	limits := e.Limits()

	var decision *Decision
	err := e.store.Update(ctx, apID, func(ap *state.AccessPoint) error {
		decision = e.decide(ap, req, in, limits)
		if !decision.Allowed || !decision.Applied {
			return errNoPersist
		}
		return nil
	})

	switch {
	case errors.Is(err, errNoPersist):
		// Verdict reached, record untouched.
	case errors.Is(err, state.ErrNotFound):
		e.logger.Warn("request for unknown access point", "ap_id", apID)
		e.observe(apID, req, in, nil, start)
		return nil, fmt.Errorf("%q: %w", apID, ErrUnknownAccessPoint)
	case err != nil:
		return nil, fmt.Errorf("state update failed: %w", err)
	}

	e.logDecision(apID, in, decision)
	e.observe(apID, req, in, decision, start)
	return decision, nil
}

// decide runs the rule chain against a snapshot of the record and, on
// acceptance, mutates it in place. Called inside the store's per-id
// critical section.
func (e *Evaluator) decide(ap *state.AccessPoint, req *ChangeRequest, in Inputs, limits Limits) *Decision {
	for _, rule := range e.rules {
		if v := rule.Check(ap, req, in, limits); v != nil {
			return &Decision{
				Allowed:           false,
				Reason:            v.Reason,
				Detail:            fmt.Sprintf("%s: %s", rule.Name(), v.Detail),
				Channel:           ap.Channel,
				PowerDB:           ap.PowerDB,
				LastChangeMinutes: ap.LastChangeMinutes,
			}
		}
	}

	changed := false
	if req.NewChannel != nil && ap.Channel != *req.NewChannel {
		ap.Channel = *req.NewChannel
		changed = true
	}
	if req.NewPowerDB != nil && ap.PowerDB != *req.NewPowerDB {
		ap.PowerDB = *req.NewPowerDB
		changed = true
	}
	if changed {
		ap.LastChangeMinutes = in.Now
	}

	return &Decision{
		Allowed:           true,
		Applied:           changed,
		Channel:           ap.Channel,
		PowerDB:           ap.PowerDB,
		LastChangeMinutes: ap.LastChangeMinutes,
	}
}

// logDecision emits one structured log line per verdict.
func (e *Evaluator) logDecision(apID string, in Inputs, d *Decision) {
	if !d.Allowed {
		e.logger.Info("change rejected",
			"ap_id", apID,
			"at", in.Now,
			"reason", string(d.Reason),
			"detail", d.Detail,
		)
		return
	}
	if !d.Applied {
		e.logger.Info("change accepted but no state change occurred",
			"ap_id", apID,
			"at", in.Now,
		)
		return
	}
	e.logger.Info("change accepted",
		"ap_id", apID,
		"at", in.Now,
		"channel", d.Channel,
		"power_db", d.PowerDB,
	)
}

// observe feeds metrics and the decision sink. A nil decision records an
// unknown-access-point lookup failure.
func (e *Evaluator) observe(apID string, req *ChangeRequest, in Inputs, d *Decision, start time.Time) {
	if e.metrics != nil {
		e.metrics.RecordEvaluation(d, time.Since(start))
	}
	if e.sink != nil && d != nil {
		e.sink.RecordDecision(apID, req, in, d)
	}
}

func validateLimits(limits Limits) error {
	if limits.ChangeBudgetMinutes <= 0 {
		return fmt.Errorf("change budget must be positive, got %d", limits.ChangeBudgetMinutes)
	}
	if limits.HysteresisThresholdDB <= 0 {
		return fmt.Errorf("hysteresis threshold must be positive, got %d", limits.HysteresisThresholdDB)
	}
	return nil
}
