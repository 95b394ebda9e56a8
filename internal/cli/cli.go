// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mnafees/chopper/internal/config"
)

// ParseFlags parses the command line arguments, args[0] being the program
// name, into a configuration for the given frontend.
func ParseFlags(args []string, frontend string) (config.Config, error) {
	cfg := config.Default(frontend)

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	readOptionFlags(flags, &cfg)

	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, &UsageError{flags: flags}
		}
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return cfg, &UsageError{flags: flags, msg: "expected exactly one CHIP-8 program"}
	}
	cfg.Program = rest[0]

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and all flag defaults to stdout.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s [options] <CHIP-8 program>\n\n", e.flags.Name())
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

func validate(cfg config.Config) error {
	if cfg.Scale < 1 {
		return fmt.Errorf("invalid scale %d: must be at least 1", cfg.Scale)
	}
	if cfg.CycleHz < 1 {
		return fmt.Errorf("invalid cycle rate %d: must be at least 1 Hz", cfg.CycleHz)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, cfg *config.Config) {
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "size in screen pixels of one CHIP-8 pixel")
	flags.IntVar(&cfg.CycleHz, "hz", cfg.CycleHz, "instructions executed per second, timers tick once per instruction")
	flags.Int64Var(&cfg.Seed, "seed", 0, "seed for the random number generator, 0 seeds from the clock")
	flags.BoolVar(&cfg.Debug, "debug", false, "trace every executed instruction")
	flags.BoolVar(&cfg.Quiet, "q", false, "only log errors")
}
