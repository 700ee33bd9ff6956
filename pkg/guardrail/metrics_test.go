package guardrail

import (
	"testing"
	"time"
)

// A single Metrics instance per process: promauto registers with the
// default registry, and duplicate registration panics.
var testMetrics = NewMetrics()

func TestMetricsRecordEvaluation(t *testing.T) {
	// Accepted, applied.
	testMetrics.RecordEvaluation(&Decision{Allowed: true, Applied: true}, time.Microsecond)

	// Accepted, no-op.
	testMetrics.RecordEvaluation(&Decision{Allowed: true}, time.Microsecond)

	// Rejected.
	testMetrics.RecordEvaluation(&Decision{Reason: ReasonBudgetNotElapsed}, time.Microsecond)

	// Unknown access point.
	testMetrics.RecordEvaluation(nil, time.Microsecond)
}
