// Package main implements the SDL window frontend of the CHIP-8 interpreter.
package main

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/mnafees/chopper/internal/cli"
	"github.com/mnafees/chopper/internal/config"
	"github.com/mnafees/chopper/internal/runner"
	"github.com/mnafees/chopper/pkg/sdl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func init() {
	// SDL calls must happen on the main thread.
	runtime.LockOSThread()
}

func main() {
	ctx := app.Context()

	cfg, err := cli.ParseFlags(os.Args, config.FrontendSDL)
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

	io := sdl.NewIO(cfg.Scale)
	if err := io.SetupWindow("Chopper | CHIP-8 Emulator"); err != nil {
		logger.Fatal("Creating window failed", log.Err(err))
	}

	err = runner.New(vm, io, logger, cfg.CycleHz).Run(ctx)
	io.Destroy()

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Interrupted")
	case err != nil:
		logger.Fatal("Emulation stopped", log.Err(err))
	}
}
