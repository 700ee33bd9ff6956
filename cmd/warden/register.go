package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerFlags struct {
	channel int
	power   int
}

var registerCmd = &cobra.Command{
	Use:   "register <ap-id>",
	Short: "Register an access point",
	Long: `Register an access point with its initial channel and transmit power.

Registration is an idempotent overwrite: registering an existing id replaces
its record and resets the change-budget clock.

Examples:
  warden register AP-001 --channel 6 --power 20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.evaluator.Register(cmd.Context(), args[0], registerFlags.channel, registerFlags.power); err != nil {
			return fmt.Errorf("failed to register %q: %w", args[0], err)
		}

		fmt.Printf("registered %s (channel %d, power %d dB)\n",
			args[0], registerFlags.channel, registerFlags.power)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().IntVar(&registerFlags.channel, "channel", 1, "initial channel number")
	registerCmd.Flags().IntVar(&registerFlags.power, "power", 20, "initial transmit power in dB")
}
