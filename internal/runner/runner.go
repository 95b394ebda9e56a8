// Package runner drives the interpreter at a fixed instruction rate and
// connects it to a display and input frontend.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/retroenv/retrogolib/log"
)

// Frontend is the display and input layer driven by the Runner.
type Frontend interface {
	// PollInput applies pending input events to the keypad and reports
	// whether the user asked to quit.
	PollInput(keys *internal.Keypad) (quit bool)
	// Present shows the framebuffer.
	Present(fb *internal.Framebuffer) error
}

// Runner is the main application loop.
type Runner struct {
	vm       *internal.C8VM
	frontend Frontend
	logger   *log.Logger
	interval time.Duration
}

// New returns a runner that executes cycleHz instructions per second.
func New(vm *internal.C8VM, frontend Frontend, logger *log.Logger, cycleHz int) *Runner {
	if cycleHz < 1 {
		cycleHz = 1
	}
	return &Runner{
		vm:       vm,
		frontend: frontend,
		logger:   logger,
		interval: time.Second / time.Duration(cycleHz),
	}
}

// Run executes instructions until the context is cancelled, the frontend
// requests to quit or an instruction fails. A quit request returns nil.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Debug("Starting main loop", log.String("interval", r.interval.String()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		quit, err := r.cycle()
		if err != nil {
			return err
		}
		if quit {
			r.logger.Info("Quit requested")
			return nil
		}
	}
}

// RunCycles executes n cycles as fast as possible.
func (r *Runner) RunCycles(n int) error {
	for range n {
		quit, err := r.cycle()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return nil
}

func (r *Runner) cycle() (bool, error) {
	if r.frontend.PollInput(r.vm.Keypad()) {
		return true, nil
	}

	if err := r.vm.Step(); err != nil {
		return false, fmt.Errorf("running program: %w", err)
	}

	if r.vm.IsDrawFlagSet() {
		if err := r.frontend.Present(r.vm.Pixels()); err != nil {
			return false, fmt.Errorf("presenting frame: %w", err)
		}
		r.vm.UnsetDrawFlag()
	}
	return false, nil
}
