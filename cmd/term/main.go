// Package main implements the terminal frontend of the CHIP-8 interpreter.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/mnafees/chopper/internal/cli"
	"github.com/mnafees/chopper/internal/config"
	"github.com/mnafees/chopper/internal/runner"
	"github.com/mnafees/chopper/pkg/term"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	ctx := app.Context()

	cfg, err := cli.ParseFlags(os.Args, config.FrontendTerminal)
	logger := config.CreateLogger(cfg.Debug, cfg.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			if msg := usageErr.Error(); msg != "" {
				logger.Error(msg)
			}
			usageErr.ShowUsage()
			os.Exit(1)
		}
		logger.Fatal(err.Error())
	}

	vm, err := runner.NewVM(cfg, logger)
	if err != nil {
		logger.Fatal("Loading program failed", log.Err(err))
	}

	screen := term.New(cfg.CycleHz)
	if err := screen.Init(); err != nil {
		logger.Fatal("Opening terminal failed", log.Err(err))
	}

	err = runner.New(vm, screen, logger, cfg.CycleHz).Run(ctx)
	// Log only after the terminal is restored.
	screen.Close()

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Interrupted")
	case err != nil:
		logger.Fatal("Emulation stopped", log.Err(err))
	}
}
