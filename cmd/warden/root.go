package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Warden - guardrail engine for Wi-Fi configuration changes",
	Long: `Warden evaluates proposed changes to access-point radio configuration
(channel, transmit power) against stability-preserving guardrails:

  - Time windows: non-emergency changes are blocked during peak hours
  - Change budgets: a minimum interval between changes to the same device
  - Hysteresis: power adjustments must meet a minimum delta

Changes are accepted or rejected; warden never plans or proposes changes
itself. State lives in memory by default, or in SQLite when configured, which
makes the CLI stateful across invocations.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
