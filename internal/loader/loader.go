// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

var (
	// ErrEmptyROM is returned for ROM files without content.
	ErrEmptyROM = errors.New("empty ROM")
	// ErrROMTooLarge is returned for ROM files that do not fit into the program area.
	ErrROMTooLarge = errors.New("ROM too large")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the raw ROM image from the given file.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads a raw ROM image from the reader. It reads at most one
// byte beyond the program area to detect oversized images.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, vm.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > vm.MaxProgramSize:
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrROMTooLarge, vm.MaxProgramSize)
	}
	return data, nil
}
