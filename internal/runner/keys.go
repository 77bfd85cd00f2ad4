package runner

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

var errInvalidKeyScript = errors.New("invalid key script")

const (
	stateDown = "down"
	stateUp   = "up"
)

// KeyEvent presses or releases a keypad key at the start of a frame.
type KeyEvent struct {
	Frame   int
	Key     uint8
	Pressed bool
}

func (e KeyEvent) String() string {
	return fmt.Sprintf("%d:%X:%s", e.Frame, e.Key, e.state())
}

func (e KeyEvent) state() string {
	if e.Pressed {
		return stateDown
	}
	return stateUp
}

// eventSlot identifies the key of an event within a frame.
type eventSlot struct {
	frame int
	key   uint8
}

// ParseKeyScript parses a comma separated list of key events in the format
// frame:key:down|up, the key being a hexadecimal digit, for example
// "10:5:down,20:5:up". The returned events are sorted by frame.
// A key can only change its state once per frame.
func ParseKeyScript(script string) ([]KeyEvent, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	parts := strings.Split(script, ",")
	events := make([]KeyEvent, 0, len(parts))
	slots := set.New[eventSlot]()

	for _, part := range parts {
		event, err := parseKeyEvent(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}

		slot := eventSlot{frame: event.Frame, key: event.Key}
		if slots.Contains(slot) {
			return nil, fmt.Errorf("%w: key %X changes state twice in frame %d", errInvalidKeyScript, event.Key, event.Frame)
		}
		slots.Add(slot)
		events = append(events, event)
	}

	slices.SortStableFunc(events, func(a, b KeyEvent) int {
		return a.Frame - b.Frame
	})
	return events, nil
}

func parseKeyEvent(s string) (KeyEvent, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return KeyEvent{}, fmt.Errorf("%w: event '%s' is not in frame:key:state format", errInvalidKeyScript, s)
	}

	frame, err := strconv.Atoi(fields[0])
	if err != nil || frame < 0 {
		return KeyEvent{}, fmt.Errorf("%w: invalid frame '%s'", errInvalidKeyScript, fields[0])
	}

	key, err := strconv.ParseUint(fields[1], 16, 4)
	if err != nil {
		return KeyEvent{}, fmt.Errorf("%w: invalid key '%s'", errInvalidKeyScript, fields[1])
	}

	var pressed bool
	switch strings.ToLower(fields[2]) {
	case stateDown:
		pressed = true
	case stateUp:
	default:
		return KeyEvent{}, fmt.Errorf("%w: invalid state '%s'", errInvalidKeyScript, fields[2])
	}

	return KeyEvent{
		Frame:   frame,
		Key:     uint8(key),
		Pressed: pressed,
	}, nil
}
