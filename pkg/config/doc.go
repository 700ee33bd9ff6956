// Package config loads and validates the warden configuration.
//
// Configuration is read from a YAML file, defaults are applied for any
// omitted field, and WARDEN_* environment variables override file values.
// The Watcher can re-read the file on change so the guardrail limits can be
// retuned without a restart.
package config
