package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <ap-id>",
	Short: "Query an access point's current state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ap, err := a.evaluator.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: channel %d, power %d dB, last change t=%d\n",
			ap.ID, ap.Channel, ap.PowerDB, ap.LastChangeMinutes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
