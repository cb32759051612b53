package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/config"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/gateway"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/health"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/orchestrator"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/unified"
)

// app bundles the wired dependencies shared by the subcommands.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	gw       gateway.Gateway
	snapshot *health.Snapshot
}

func (a *app) newOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.NewWithOptions(a.gw, a.snapshot, orchestrator.Options{
		SeedMemory:   a.cfg.Pipeline.SeedMemory,
		HistoryPairs: a.cfg.Pipeline.HistoryPairs,
	}, a.logger)
}

func (a *app) newUnified() *unified.Agent {
	return unified.NewWithOptions(a.gw, a.snapshot, unified.Options{
		SeedMemory:   a.cfg.Pipeline.SeedMemory,
		HistoryPairs: a.cfg.Pipeline.HistoryPairs,
	}, a.logger)
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "pha",
		Short:         "Personal health agent: multi-agent vs unified LLM pipelines over mock health data",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.AddCommand(
		newChatCmd(&configPath),
		newCompareCmd(&configPath),
	)

	return rootCmd
}

func wireApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	gw, err := gateway.NewOpenAIGateway(gateway.Config{
		BaseURL:      cfg.Gateway.BaseURL,
		APIKey:       cfg.Gateway.APIKey(),
		DefaultModel: cfg.Gateway.Model,
		MaxTokens:    cfg.Gateway.MaxTokens,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("wire gateway: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		gw:       gw,
		snapshot: health.MockSnapshot(cfg.Data.Seed),
	}, nil
}

func newLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger(), nil
}
