// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/verification"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete ROM processing workflow: the ROM is
// loaded into a new machine, executed for the configured frames and the
// final display is written and optionally verified. The display is also
// written when the machine faults.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	runnerConfig, err := config.RunnerConfig(opts)
	if err != nil {
		return fmt.Errorf("creating runner config: %w", err)
	}

	machine := vm.New(config.MachineOptions(logger, opts)...)
	if err := machine.Load(rom); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	logger.Debug("Program loaded",
		log.String("file", opts.Input),
		log.Int("size", len(rom)))

	stats, runErr := runner.New(logger, machine, runnerConfig).Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		return runErr //nolint:wrapcheck // cancellation is handled by the caller
	}

	if !opts.NoOutput {
		if err := writeDisplay(opts, machine.Display()); err != nil {
			return fmt.Errorf("writing display: %w", err)
		}
	}

	pixels := machine.Display().Pixels()
	logger.Info("Run finished",
		log.String("file", opts.Input),
		log.Int("frames", stats.Frames),
		log.Int("cycles", stats.Cycles),
		log.Int("beeps", stats.Beeps),
		log.String("fingerprint", verification.Fingerprint(pixels)))

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}

	if opts.Verify != "" {
		if err := verification.VerifyDisplay(logger, opts.Verify, pixels); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}

	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".txt"
}

func writeDisplay(opts options.Program, display *vm.Display) error {
	output, err := createWriter(opts)
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := output.(io.Closer); ok && output != os.Stdout {
			_ = closer.Close()
		}
	}()

	w := writer.New(output, config.WriterOptions(opts))
	if err := w.WriteDisplay(display); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	return nil
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}
