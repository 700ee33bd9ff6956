package guardrail

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the guardrail evaluator.
type Metrics struct {
	// Decision outcomes
	decisions      *prometheus.CounterVec
	appliedChanges prometheus.Counter
	unknownLookups prometheus.Counter

	// Evaluation latency
	evalDuration prometheus.Histogram
}

// NewMetrics creates a Metrics instance registered with the default
// Prometheus registry. Create at most one per process.
func NewMetrics() *Metrics {
	return &Metrics{
		decisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warden_guardrail_decisions_total",
				Help: "Total number of guardrail decisions by result and reason",
			},
			[]string{"result", "reason"},
		),

		appliedChanges: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "warden_guardrail_applied_changes_total",
				Help: "Total number of accepted requests that mutated stored state",
			},
		),

		unknownLookups: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "warden_guardrail_unknown_access_points_total",
				Help: "Total number of requests naming an unregistered access point",
			},
		),

		evalDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "warden_guardrail_evaluation_duration_seconds",
				Help:    "Duration of guardrail evaluations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
		),
	}
}

// RecordEvaluation records one evaluation. A nil decision counts as an
// unknown-access-point lookup failure.
func (m *Metrics) RecordEvaluation(d *Decision, duration time.Duration) {
	m.evalDuration.Observe(duration.Seconds())

	if d == nil {
		m.unknownLookups.Inc()
		return
	}

	if !d.Allowed {
		m.decisions.WithLabelValues("rejected", string(d.Reason)).Inc()
		return
	}

	m.decisions.WithLabelValues("accepted", "").Inc()
	if d.Applied {
		m.appliedChanges.Inc()
	}
}
