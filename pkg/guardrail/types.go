package guardrail

// Default policy parameters. Both are tunable via Limits.
const (
	// DefaultChangeBudgetMinutes is the minimum spacing, in minutes,
	// between accepted mutating changes to the same access point.
	DefaultChangeBudgetMinutes = 240

	// DefaultHysteresisThresholdDB is the minimum power delta, in dB,
	// required to accept a power change.
	DefaultHysteresisThresholdDB = 2
)

// Limits holds the tunable policy parameters for the rule chain.
type Limits struct {
	// ChangeBudgetMinutes is the change-budget interval in minutes.
	ChangeBudgetMinutes int `yaml:"change_budget_minutes"`

	// HysteresisThresholdDB is the minimum accepted power delta in dB.
	HysteresisThresholdDB int `yaml:"hysteresis_threshold_db"`
}

// DefaultLimits returns the default policy parameters.
func DefaultLimits() Limits {
	return Limits{
		ChangeBudgetMinutes:   DefaultChangeBudgetMinutes,
		HysteresisThresholdDB: DefaultHysteresisThresholdDB,
	}
}

// ChangeRequest is one proposed mutation. It is not persisted.
// A nil field means that value is not being changed; a request with both
// fields nil is valid and, if admitted, is accepted as a no-op.
type ChangeRequest struct {
	// NewChannel is the requested channel, or nil for no channel change.
	NewChannel *int `yaml:"new_channel"`

	// NewPowerDB is the requested transmit power in dB, or nil for no
	// power change.
	NewPowerDB *int `yaml:"new_power_db"`

	// Emergency bypasses the time-window rule only. Emergencies remain
	// subject to the change budget and hysteresis.
	Emergency bool `yaml:"emergency"`
}

// Inputs carries the caller-supplied timing context for one evaluation.
// The engine treats both values as authoritative: it neither reads the
// clock nor computes time-of-day itself.
type Inputs struct {
	// Now is the current time in minutes since an arbitrary epoch.
	Now int

	// PeakHour reports whether Now falls in a peak-hour window.
	PeakHour bool
}

// Reason identifies which guardrail rejected a request.
type Reason string

const (
	// ReasonPeakHourBlocked: a non-emergency change during peak hours.
	ReasonPeakHourBlocked Reason = "peak_hour_blocked"

	// ReasonBudgetNotElapsed: the change budget has not elapsed since the
	// last applied change.
	ReasonBudgetNotElapsed Reason = "budget_not_elapsed"

	// ReasonHysteresisTooSmall: the requested power delta is below the
	// hysteresis threshold.
	ReasonHysteresisTooSmall Reason = "hysteresis_too_small"
)

// Decision is the verdict for one change request.
type Decision struct {
	// Allowed indicates whether the request passed every applicable rule.
	Allowed bool

	// Reason identifies the rule that rejected the request (if Allowed=false).
	Reason Reason

	// Detail is a human-readable explanation of the rejection, including
	// the measured value that tripped the rule.
	Detail string

	// Applied indicates that a stored value actually changed (if
	// Allowed=true). An accepted request whose values equal current state
	// leaves the record, including its last-change time, untouched.
	Applied bool

	// Channel, PowerDB and LastChangeMinutes are the stored values after
	// the decision.
	Channel           int
	PowerDB           int
	LastChangeMinutes int
}

// DecisionSink receives every verdict the evaluator produces.
// Implementations must not block; sink failures never affect verdicts.
type DecisionSink interface {
	RecordDecision(apID string, req *ChangeRequest, in Inputs, d *Decision)
}
