// Warden is a guardrail engine for Wi-Fi network configuration changes.
//
// It decides whether a proposed change to an access point's radio channel or
// transmit power may be applied, given the access point's current state and a
// set of stability-preserving policies: peak-hour avoidance, per-device
// change budgets, and power-change hysteresis.
//
// Usage:
//
//	# Register an access point
//	warden register AP-001 --channel 6 --power 20
//
//	# Submit a change request at simulated time t=250
//	warden request AP-001 --channel 11 --at 250
//
//	# Query current state
//	warden get AP-001
//
//	# Replay a scripted scenario
//	warden simulate scenario.yaml
//
//	# Show version information
//	warden version
package main

func main() {
	Execute()
}
