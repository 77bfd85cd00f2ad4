// Package runner implements the execution driver that advances a machine
// frame by frame at the 60 Hz timer cadence.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// FrameDuration is the duration of a single 60 Hz frame.
const FrameDuration = time.Second / 60

// Machine is the interface of the virtual machine driven by the runner.
type Machine interface {
	Tick() error
	TickTimers() bool
	Keypress(key int, pressed bool) error
}

// Config of the runner.
type Config struct {
	CyclesPerFrame int        // instructions executed per frame
	Frames         int        // frames to run, 0 runs until the context is cancelled
	Realtime       bool       // pace frames with FrameDuration
	Keys           []KeyEvent // scripted key events, sorted by frame
}

// Stats contains the counters of a run.
type Stats struct {
	Frames int
	Cycles int
	Beeps  int
}

// Runner drives a machine.
type Runner struct {
	logger  *log.Logger
	machine Machine
	config  Config
}

// New returns a new runner for the given machine.
func New(logger *log.Logger, machine Machine, config Config) *Runner {
	return &Runner{
		logger:  logger,
		machine: machine,
		config:  config,
	}
}

// Run executes frames until the configured frame count is reached, the
// machine faults or the context is cancelled. Each frame applies the
// scripted key events of the frame, executes the configured number of
// instructions and ticks the timers once.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var (
		stats  Stats
		ticker *time.Ticker
		events = r.config.Keys
	)

	if r.config.Realtime {
		ticker = time.NewTicker(FrameDuration)
		defer ticker.Stop()
	}

	for frame := 0; r.config.Frames == 0 || frame < r.config.Frames; frame++ {
		if err := waitFrame(ctx, ticker); err != nil {
			return stats, err
		}

		var err error
		events, err = r.applyKeyEvents(frame, events)
		if err != nil {
			return stats, err
		}

		for range r.config.CyclesPerFrame {
			if err := r.machine.Tick(); err != nil {
				return stats, fmt.Errorf("executing frame %d: %w", frame, err)
			}
			stats.Cycles++
		}

		if r.machine.TickTimers() {
			stats.Beeps++
			r.logger.Debug("Beep", log.Int("frame", frame))
		}
		stats.Frames++
	}

	return stats, nil
}

// applyKeyEvents applies all events of the given frame and returns the remaining events.
func (r *Runner) applyKeyEvents(frame int, events []KeyEvent) ([]KeyEvent, error) {
	for len(events) > 0 && events[0].Frame <= frame {
		event := events[0]
		events = events[1:]

		if err := r.machine.Keypress(int(event.Key), event.Pressed); err != nil {
			return events, fmt.Errorf("applying key event %s: %w", event, err)
		}
		r.logger.Debug("Key event",
			log.Int("frame", frame),
			log.Hex("key", event.Key),
			log.String("state", event.state()))
	}
	return events, nil
}

func waitFrame(ctx context.Context, ticker *time.Ticker) error {
	if ticker == nil {
		return ctx.Err() //nolint:wrapcheck // cancellation is reported as is
	}

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck // cancellation is reported as is
	case <-ticker.C:
		return nil
	}
}
