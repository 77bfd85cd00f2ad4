package writer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

type testFrame struct {
	width, height int
	lit           map[[2]int]bool
}

func (f testFrame) Width() int  { return f.width }
func (f testFrame) Height() int { return f.height }

func (f testFrame) Pixel(x, y int) bool {
	return f.lit[[2]int{x, y}]
}

func newTestFrame() testFrame {
	return testFrame{
		width:  4,
		height: 3,
		lit: map[[2]int]bool{
			{0, 0}: true,
			{3, 1}: true,
			{1, 2}: true,
			{2, 2}: true,
		},
	}
}

func TestWriteDisplay(t *testing.T) {
	tests := []struct {
		name     string
		options  Options
		expected string
	}{
		{
			name:    "default options",
			options: DefaultOptions(),
			expected: "+----+\n" +
				"|█...|\n" +
				"|...█|\n" +
				"|.██.|\n" +
				"+----+\n",
		},
		{
			name:    "no border custom runes",
			options: Options{On: '#', Off: ' '},
			expected: "#   \n" +
				"   #\n" +
				" ## \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := New(&buf, tt.options)
			assert.NoError(t, w.WriteDisplay(newTestFrame()))

			if diff := cmp.Diff(tt.expected, buf.String()); diff != "" {
				t.Errorf("display mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

func TestWriteDisplay_Error(t *testing.T) {
	w := New(failingWriter{}, DefaultOptions())
	err := w.WriteDisplay(newTestFrame())
	assert.True(t, errors.Is(err, errWriteFailed))
}
