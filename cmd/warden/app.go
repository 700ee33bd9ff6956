package main

import (
	"fmt"
	"log/slog"

	"radiomesh-hq/warden/pkg/config"
	"radiomesh-hq/warden/pkg/guardrail"
	"radiomesh-hq/warden/pkg/journal"
	"radiomesh-hq/warden/pkg/state"
	"radiomesh-hq/warden/pkg/telemetry/logging"
)

// app wires the store, evaluator and journal together for one CLI invocation.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     state.Store
	evaluator *guardrail.Evaluator
	recorder  *journal.Recorder
}

// newApp loads configuration and builds the component graph.
func newApp() (*app, error) {
	cfg := config.DefaultConfig()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}

	var store state.Store
	switch cfg.Storage.Backend {
	case "sqlite":
		store, err = state.NewSQLiteStoreWithConfig(state.SQLiteStoreConfig{
			DBPath:      cfg.Storage.DBPath,
			BusyTimeout: cfg.Storage.BusyTimeout,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open state store: %w", err)
		}
	default:
		store = state.NewMemoryStore(logger)
	}

	var recorder *journal.Recorder
	var sink guardrail.DecisionSink
	if !cfg.Journal.Disabled {
		recorder = journal.NewRecorder(journal.RecorderConfig{
			MaxRecords: cfg.Journal.MaxRecords,
			Logger:     logger,
		})
		sink = recorder
	}

	evaluator, err := guardrail.NewEvaluator(store, guardrail.Config{
		Limits: cfg.Guardrail,
		Logger: logger,
		Sink:   sink,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		evaluator: evaluator,
		recorder:  recorder,
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() error {
	return a.store.Close()
}
