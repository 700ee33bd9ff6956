package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"radiomesh-hq/warden/pkg/guardrail"
	"radiomesh-hq/warden/pkg/schedule"
)

var requestFlags struct {
	channel   int
	power     int
	emergency bool
	at        int
	peak      bool
	wallClock bool
}

var requestCmd = &cobra.Command{
	Use:   "request <ap-id>",
	Short: "Submit a change request for an access point",
	Long: `Submit a proposed channel and/or power change for guardrail evaluation.

The request time is simulated: pass --at with a minute value, plus --peak when
the request falls in a peak-hour window. With --wall-clock, warden derives both
from the system clock and the configured peak-hours window instead.

The exit status is non-zero when the request is rejected.

Examples:
  warden request AP-001 --channel 11 --at 250
  warden request AP-001 --power 22 --at 500
  warden request AP-001 --channel 1 --at 800 --peak --emergency
  warden request AP-001 --channel 11 --wall-clock`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		req := &guardrail.ChangeRequest{Emergency: requestFlags.emergency}
		if cmd.Flags().Changed("channel") {
			ch := requestFlags.channel
			req.NewChannel = &ch
		}
		if cmd.Flags().Changed("power") {
			pw := requestFlags.power
			req.NewPowerDB = &pw
		}

		in := guardrail.Inputs{Now: requestFlags.at, PeakHour: requestFlags.peak}
		if requestFlags.wallClock {
			now := time.Now()
			in.Now = schedule.MinuteClock{}.Minutes(now)
			in.PeakHour = a.cfg.PeakHours.IsPeakHour(now)
		}

		d, err := a.evaluator.EvaluateAndApply(cmd.Context(), args[0], req, in)
		if err != nil {
			return err
		}

		if !d.Allowed {
			return fmt.Errorf("rejected: %s", d.Detail)
		}
		if d.Applied {
			fmt.Printf("accepted: channel %d, power %d dB, last change t=%d\n",
				d.Channel, d.PowerDB, d.LastChangeMinutes)
		} else {
			fmt.Println("accepted: no state change")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(requestCmd)

	requestCmd.Flags().IntVar(&requestFlags.channel, "channel", 0, "requested channel number")
	requestCmd.Flags().IntVar(&requestFlags.power, "power", 0, "requested transmit power in dB")
	requestCmd.Flags().BoolVar(&requestFlags.emergency, "emergency", false, "bypass the peak-hour rule only")
	requestCmd.Flags().IntVar(&requestFlags.at, "at", 0, "request time in minutes")
	requestCmd.Flags().BoolVar(&requestFlags.peak, "peak", false, "request falls in a peak-hour window")
	requestCmd.Flags().BoolVar(&requestFlags.wallClock, "wall-clock", false, "derive time and peak flag from the system clock")
}
