// Package state implements the network state store: the authoritative record
// of every managed access point's current configuration.
//
// # Overview
//
// The store maps an access-point id to its AccessPoint record. Two backends
// are provided:
//
//   - MemoryStore: in-memory map, the default. All state is lost on exit.
//   - SQLiteStore: durable single-file backend for deployments (and the CLI)
//     that need state to survive restarts.
//
// # Atomicity
//
// The unit of atomicity is one access point's record. Update runs its
// callback inside a per-id critical section, so concurrent updates to
// different ids never block each other while concurrent updates to the same
// id are serialized. This is what lets the guardrail evaluator perform its
// whole read-evaluate-mutate sequence without a stale-read window.
//
// # Thread Safety
//
// All store operations are safe for concurrent use.
package state
