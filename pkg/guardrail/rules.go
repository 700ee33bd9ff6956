package guardrail

import (
	"fmt"

	"radiomesh-hq/warden/pkg/state"
)

// Rule is a single stateless guardrail predicate. A nil Violation means the
// rule passed (or did not apply).
type Rule interface {
	// Name identifies the rule in logs.
	Name() string

	// Check evaluates the rule against a snapshot of the record.
	Check(ap *state.AccessPoint, req *ChangeRequest, in Inputs, limits Limits) *Violation
}

// Violation describes a failed rule check.
type Violation struct {
	// Reason is the rejection reason reported to the caller.
	Reason Reason

	// Detail explains the violation, including the measured value.
	Detail string
}

// defaultRuleChain returns the rules in their contractual evaluation order:
// time window, then change budget, then hysteresis. The order is observable
// through rejection reasons in multi-failure cases and must not change.
func defaultRuleChain() []Rule {
	return []Rule{
		timeWindowRule{},
		changeBudgetRule{},
		hysteresisRule{},
	}
}

// timeWindowRule blocks non-emergency changes during peak hours.
// Emergency requests always bypass this rule, regardless of other fields.
type timeWindowRule struct{}

func (timeWindowRule) Name() string { return "time_window" }

func (timeWindowRule) Check(ap *state.AccessPoint, req *ChangeRequest, in Inputs, limits Limits) *Violation {
	if in.PeakHour && !req.Emergency {
		return &Violation{
			Reason: ReasonPeakHourBlocked,
			Detail: "non-emergency change during peak hours",
		}
	}
	return nil
}

// changeBudgetRule rate-limits changes: the configured budget must have
// elapsed since the last applied change. Not bypassed by the emergency flag.
// A current time earlier than the last recorded change yields a negative
// elapsed value, which is still under the budget and rejects; monotonicity
// of the caller's clock is not validated.
type changeBudgetRule struct{}

func (changeBudgetRule) Name() string { return "change_budget" }

func (changeBudgetRule) Check(ap *state.AccessPoint, req *ChangeRequest, in Inputs, limits Limits) *Violation {
	elapsed := in.Now - ap.LastChangeMinutes
	if elapsed < limits.ChangeBudgetMinutes {
		return &Violation{
			Reason: ReasonBudgetNotElapsed,
			Detail: fmt.Sprintf("last change %d min ago, budget %d min", elapsed, limits.ChangeBudgetMinutes),
		}
	}
	return nil
}

// hysteresisRule rejects power adjustments too small to be worth the
// disruption, preventing flapping. It applies only when a power change is
// requested; a channel-only request never trips it.
type hysteresisRule struct{}

func (hysteresisRule) Name() string { return "hysteresis" }

func (hysteresisRule) Check(ap *state.AccessPoint, req *ChangeRequest, in Inputs, limits Limits) *Violation {
	if req.NewPowerDB == nil {
		return nil
	}
	delta := *req.NewPowerDB - ap.PowerDB
	if delta < 0 {
		delta = -delta
	}
	if delta < limits.HysteresisThresholdDB {
		return &Violation{
			Reason: ReasonHysteresisTooSmall,
			Detail: fmt.Sprintf("power delta %d dB under threshold %d dB", delta, limits.HysteresisThresholdDB),
		}
	}
	return nil
}
