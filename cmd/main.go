package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/ytxrecon/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	if err := shared.SetLogLevelString(logger, config.Logging.Level); err != nil {
		logger.Warn("ignoring log level", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: defaultConfigPath,
		Logger:     logger,
	})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrInvalidInput):
			logger.Fatal("input snapshot rejected", "error", err)
		case errors.Is(err, context.DeadlineExceeded):
			logger.Fatal("reconciliation timed out", "error", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "ytxrecon",
		Usage:    "Reconcile music search logs against streaming and video catalogs",
		Version:  "0.1.0",
		Commands: r.register(),
	}
}
