// Package options contains the program options.
package options

// Default values of the execution flags.
const (
	DefaultCyclesPerFrame = 10
	DefaultFrames         = 600
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file for the final display (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	CyclesPerFrame int    `flag:"cycles" usage:"instructions executed per 60 Hz frame" default:"10"`
	Frames         int    `flag:"frames" usage:"frames to run, 0 runs until interrupted" default:"600"`
	Seed           uint64 `flag:"seed" usage:"seed for the random number generator, 0 uses a random seed"`
	Keys           string `flag:"keys" usage:"scripted key events as frame:key:down|up, comma separated"`
	Realtime       bool   `flag:"realtime" usage:"pace frames at 60 Hz instead of running as fast as possible"`
	Verify         string `flag:"verify" usage:"expected display fingerprint after the last frame"`
	Debug          bool   `flag:"debug" usage:"enable debug logging and instruction tracing"`
	Quiet          bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains display output options.
type OutputFlags struct {
	NoBorder bool `flag:"noborder" usage:"do not draw a border around the display"`
	NoOutput bool `flag:"nooutput" usage:"do not write the final display"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	OutputFlags
}
