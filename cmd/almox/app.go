package main

import (
	"context"
	"fmt"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/almoxarifado/almox/internal/config"
	"github.com/almoxarifado/almox/internal/logging"
	"github.com/almoxarifado/almox/internal/paths"
	"github.com/almoxarifado/almox/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app bundles what every command needs.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	client *api.Client
	store  *session.Store
}

// loadApp reads the config and wires the logger, API client and session
// store. Callers must call close.
func loadApp() (*app, error) {
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return nil, err
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = paths.LogFile()
	}
	logger, err := logging.New(logFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		client: api.New(cfg.APIURL, cfg.Timeout, logger),
		store:  session.NewStore(paths.SessionFile()),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// cmdContext returns cmd's context. Commands dispatched from the menu were
// never executed by cobra and have none.
func cmdContext(cmd *cobra.Command) context.Context {
	if cmd == nil || cmd.Context() == nil {
		return context.Background()
	}
	return cmd.Context()
}
