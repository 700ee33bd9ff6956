// Package guardrail implements the change-admission engine for Wi-Fi
// configuration changes.
//
// # Overview
//
// A caller proposes a channel and/or transmit-power change for a named access
// point at a given simulated time. The evaluator runs an ordered chain of
// stability-preserving rules against the stored record and either rejects the
// request with the first violated rule's reason, or accepts it and applies the
// mutation atomically.
//
// The rule chain, evaluated strictly in this order:
//
//  1. Time window: non-emergency changes are blocked during peak hours.
//  2. Change budget: a minimum interval must have elapsed since the last
//     applied change to the same access point.
//  3. Hysteresis: a requested power change must meet a minimum delta.
//
// The first failing rule short-circuits evaluation; a request that would
// violate several rules is reported with the first reason in chain order.
// Emergency requests bypass the time-window rule only.
//
// # Acceptance vs. application
//
// An accepted request whose requested values equal the stored values is a
// no-op: it is still accepted, but the last-change timestamp is not advanced
// and the store is untouched. Decision.Applied distinguishes the two outcomes.
//
// # Timing
//
// The evaluator performs no clock access. The current time (integer minutes)
// and the peak-hour flag are caller-supplied inputs; package schedule offers a
// helper for computing both from wall-clock time.
package guardrail
