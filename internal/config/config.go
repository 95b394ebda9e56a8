// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// Frontend names
const (
	FrontendSDL      = "sdl"
	FrontendTerminal = "term"
)

// Defaults used when no flag overrides them
const (
	DefaultScale   = 10
	DefaultCycleHz = 60
)

// Config holds the runtime options of the emulator.
type Config struct {
	Program  string // path of the ROM to run
	Frontend string
	Scale    int // window pixels per CHIP-8 pixel
	CycleHz  int // instructions executed per second
	Seed     int64

	Debug bool
	Quiet bool
}

// Default returns the configuration used when no flags are given.
func Default(frontend string) Config {
	return Config{
		Frontend: frontend,
		Scale:    DefaultScale,
		CycleHz:  DefaultCycleHz,
	}
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
