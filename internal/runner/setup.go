package runner

import (
	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/config"
	"github.com/retroenv/retrogolib/log"
)

// NewVM creates an interpreter for the configuration and loads its program.
func NewVM(cfg config.Config, logger *log.Logger) (*internal.C8VM, error) {
	var opts []internal.Option
	if cfg.Debug {
		opts = append(opts, internal.WithLogger(logger))
	}
	if cfg.Seed != 0 {
		opts = append(opts, internal.WithRandomSource(internal.NewSeededRandomSource(cfg.Seed)))
	}

	vm := internal.NewC8VM(opts...)
	if err := vm.LoadProgram(cfg.Program); err != nil {
		return nil, err
	}

	logger.Info("Program loaded",
		log.String("program", cfg.Program),
		log.String("frontend", cfg.Frontend),
		log.Int("hz", cfg.CycleHz))
	return vm, nil
}
