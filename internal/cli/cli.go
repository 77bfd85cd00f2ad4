// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

var (
	errInvalidCycles = errors.New("cycles per frame must be at least 1")
	errInvalidFrames = errors.New("frames must not be negative")
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args)
}

func parseArgs(arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(arguments[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	if len(args) > 0 && opts.Batch == "" {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks the numeric execution options.
func validateOptions(opts options.Program) error {
	if opts.CyclesPerFrame < 1 {
		return fmt.Errorf("%w: %d", errInvalidCycles, opts.CyclesPerFrame)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("%w: %d", errInvalidFrames, opts.Frames)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the final display, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, for example *.ch8")
	flags.IntVar(&opts.CyclesPerFrame, "cycles", options.DefaultCyclesPerFrame, "instructions executed per 60 Hz frame")
	flags.IntVar(&opts.Frames, "frames", options.DefaultFrames, "number of frames to run, 0 runs until interrupted")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 uses a random seed")
	flags.StringVar(&opts.Keys, "keys", "", "scripted key events as frame:key:down|up, comma separated, for example 10:5:down,20:5:up")
	flags.BoolVar(&opts.Realtime, "realtime", false, "pace frames at 60 Hz instead of running as fast as possible")
	flags.StringVar(&opts.Verify, "verify", "", "verify that the display fingerprint after the last frame matches the given value")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging and instruction tracing")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.NoBorder, "noborder", false, "do not draw a border around the display output")
	flags.BoolVar(&opts.NoOutput, "nooutput", false, "do not write the final display")
}
