// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

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

// MachineOptions returns the virtual machine options for the program options.
// Instruction tracing is only enabled in debug mode as it logs every cycle.
func MachineOptions(logger *log.Logger, opts options.Program) []vm.Option {
	var machineOptions []vm.Option
	if opts.Seed != 0 {
		machineOptions = append(machineOptions, vm.WithSeed(opts.Seed))
	}
	if opts.Debug {
		machineOptions = append(machineOptions, vm.WithLogger(logger))
	}
	return machineOptions
}

// RunnerConfig returns the execution driver configuration for the program options.
func RunnerConfig(opts options.Program) (runner.Config, error) {
	keys, err := runner.ParseKeyScript(opts.Keys)
	if err != nil {
		return runner.Config{}, err //nolint:wrapcheck // error already names the key script
	}

	return runner.Config{
		CyclesPerFrame: opts.CyclesPerFrame,
		Frames:         opts.Frames,
		Realtime:       opts.Realtime,
		Keys:           keys,
	}, nil
}

// WriterOptions returns the display writer options for the program options.
func WriterOptions(opts options.Program) writer.Options {
	wopts := writer.DefaultOptions()
	wopts.Border = !opts.NoBorder
	return wopts
}
