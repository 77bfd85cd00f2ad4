// Package writer implements text rendering of the machine display.
package writer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	defaultOn  = '█'
	defaultOff = '.'
)

// Frame is a monochrome pixel grid.
type Frame interface {
	Width() int
	Height() int
	Pixel(x, y int) bool
}

// Options of the writer.
type Options struct {
	On     rune // rune for lit pixels
	Off    rune // rune for unlit pixels
	Border bool // draw an ASCII border around the frame
}

// DefaultOptions returns the default writer options.
func DefaultOptions() Options {
	return Options{
		On:     defaultOn,
		Off:    defaultOff,
		Border: true,
	}
}

// Writer renders frames as text, one line per pixel row.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteDisplay writes the frame to the output.
func (w *Writer) WriteDisplay(frame Frame) error {
	buf := bufio.NewWriter(w.writer)
	width, height := frame.Width(), frame.Height()

	var border string
	if w.options.Border {
		border = "+" + strings.Repeat("-", width) + "+\n"
		if _, err := buf.WriteString(border); err != nil {
			return fmt.Errorf("writing border: %w", err)
		}
	}

	var line strings.Builder
	for y := range height {
		line.Reset()
		if w.options.Border {
			line.WriteByte('|')
		}

		for x := range width {
			if frame.Pixel(x, y) {
				line.WriteRune(w.options.On)
			} else {
				line.WriteRune(w.options.Off)
			}
		}

		if w.options.Border {
			line.WriteByte('|')
		}
		line.WriteByte('\n')

		if _, err := buf.WriteString(line.String()); err != nil {
			return fmt.Errorf("writing row %d: %w", y, err)
		}
	}

	if w.options.Border {
		if _, err := buf.WriteString(border); err != nil {
			return fmt.Errorf("writing border: %w", err)
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}
