package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"radiomesh-hq/warden/pkg/config"
	"radiomesh-hq/warden/pkg/guardrail"
	"radiomesh-hq/warden/pkg/state"
)

// scenario is a scripted sequence of registrations and timed change requests.
type scenario struct {
	AccessPoints []scenarioAP   `yaml:"access_points"`
	Steps        []scenarioStep `yaml:"steps"`
}

type scenarioAP struct {
	ID      string `yaml:"id"`
	Channel int    `yaml:"channel"`
	PowerDB int    `yaml:"power_db"`

	// LastChange seeds the change-budget baseline. When omitted the record
	// starts at the sentinel that admits an immediate first change.
	LastChange *int `yaml:"last_change"`
}

type scenarioStep struct {
	AP        string `yaml:"ap"`
	At        int    `yaml:"at"`
	Channel   *int   `yaml:"channel"`
	PowerDB   *int   `yaml:"power_db"`
	Peak      bool   `yaml:"peak"`
	Emergency bool   `yaml:"emergency"`
}

var simulateFlags struct {
	watchConfig bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Replay a scripted scenario through the guardrail engine",
	Long: `Replay a scenario file: register its access points, then submit each
timed change request in order, printing every verdict.

With --watch-config, the config file is watched for the duration of the run
and guardrail limits are retuned live when it changes.

Scenario format:

  access_points:
    - id: AP-001
      channel: 6
      power_db: 20
  steps:
    - ap: AP-001
      at: 250
      channel: 11
    - ap: AP-001
      at: 800
      channel: 1
      peak: true
      emergency: true`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read scenario file: %w", err)
		}
		var sc scenario
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return fmt.Errorf("failed to parse scenario file %q: %w", args[0], err)
		}

		ctx := cmd.Context()
		if simulateFlags.watchConfig && cfgFile != "" {
			watchCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			if err := watchLimits(watchCtx, a); err != nil {
				return err
			}
		}

		return runScenario(ctx, a, &sc)
	},
}

// watchLimits retunes the evaluator's limits whenever the config file changes.
func watchLimits(ctx context.Context, a *app) error {
	watcher, err := config.NewWatcher(config.WatcherConfig{
		Path:   cfgFile,
		Logger: a.logger,
	})
	if err != nil {
		return err
	}
	go func() {
		_ = watcher.Watch(ctx, func(cfg *config.Config) {
			if err := a.evaluator.SetLimits(cfg.Guardrail); err != nil {
				a.logger.Error("rejected reloaded limits", "error", err)
			}
		})
	}()
	return nil
}

// runScenario registers the scenario's access points and replays its steps.
func runScenario(ctx context.Context, a *app, sc *scenario) error {
	for _, ap := range sc.AccessPoints {
		var err error
		if ap.LastChange != nil {
			err = a.store.Add(ctx, &state.AccessPoint{
				ID:                ap.ID,
				Channel:           ap.Channel,
				PowerDB:           ap.PowerDB,
				LastChangeMinutes: *ap.LastChange,
			})
		} else {
			err = a.evaluator.Register(ctx, ap.ID, ap.Channel, ap.PowerDB)
		}
		if err != nil {
			return fmt.Errorf("failed to register %q: %w", ap.ID, err)
		}
	}

	rejected := 0
	for i, step := range sc.Steps {
		req := &guardrail.ChangeRequest{
			NewChannel: step.Channel,
			NewPowerDB: step.PowerDB,
			Emergency:  step.Emergency,
		}
		in := guardrail.Inputs{Now: step.At, PeakHour: step.Peak}

		d, err := a.evaluator.EvaluateAndApply(ctx, step.AP, req, in)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}

		switch {
		case !d.Allowed:
			rejected++
			fmt.Printf("step %d: %s t=%d REJECTED (%s)\n", i+1, step.AP, step.At, d.Detail)
		case d.Applied:
			fmt.Printf("step %d: %s t=%d ACCEPTED (channel %d, power %d dB)\n",
				i+1, step.AP, step.At, d.Channel, d.PowerDB)
		default:
			fmt.Printf("step %d: %s t=%d ACCEPTED (no state change)\n", i+1, step.AP, step.At)
		}
	}

	fmt.Printf("%d steps, %d accepted, %d rejected\n", len(sc.Steps), len(sc.Steps)-rejected, rejected)
	return nil
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().BoolVar(&simulateFlags.watchConfig, "watch-config", false, "retune limits when the config file changes")
}
