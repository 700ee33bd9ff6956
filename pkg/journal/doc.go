// Package journal keeps an audit trail of guardrail verdicts.
//
// The Recorder implements guardrail.DecisionSink: every accepted or rejected
// change request is appended as a Record with a unique id. The journal is a
// side channel only; recording never influences a verdict, and a full journal
// drops the oldest records first.
//
// Retention is enforced two ways: the Recorder itself is bounded by record
// count, and the Pruner (optionally driven by the cron Scheduler) removes
// records older than a retention period.
package journal
