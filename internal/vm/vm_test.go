package vm

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestVM returns a machine with the given opcodes loaded at ProgramStart.
func newTestVM(t *testing.T, opcodes ...uint16) *VM {
	t.Helper()
	v := New(WithSeed(1))
	assert.NoError(t, v.Load(program(opcodes...)))
	return v
}

func program(opcodes ...uint16) []byte {
	data := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		data = append(data, byte(op>>8), byte(op))
	}
	return data
}

func tickN(t *testing.T, v *VM, n int) {
	t.Helper()
	for range n {
		assert.NoError(t, v.Tick())
	}
}

func TestNew(t *testing.T) {
	v := New()

	assert.Equal(t, uint16(ProgramStart), v.PC())
	assert.Equal(t, uint16(0), v.I())
	assert.Equal(t, uint8(0), v.SP())
	assert.Equal(t, uint8(0), v.DelayTimer())
	assert.Equal(t, uint8(0), v.SoundTimer())
	assert.Equal(t, 0, v.Display().Lit())

	for x := range RegisterCount {
		assert.Equal(t, uint8(0), v.Register(x))
	}
	for key := range KeyCount {
		assert.False(t, v.Key(key))
	}
}

func TestFontset(t *testing.T) {
	v := New()
	assertFontset(t, v)

	assert.NoError(t, v.Load([]byte{0x12, 0x34}))
	v.Reset()
	assertFontset(t, v)

	font := Fontset()
	assert.Len(t, font, 80)
	glyphs := map[int][]byte{
		0x0: {0xF0, 0x90, 0x90, 0x90, 0xF0},
		0x1: {0x20, 0x60, 0x20, 0x20, 0x70},
		0xB: {0xE0, 0x90, 0xE0, 0x90, 0xE0},
		0xF: {0xF0, 0x80, 0xF0, 0x80, 0x80},
	}
	for digit, glyph := range glyphs {
		start := digit * FontGlyphSize
		assert.Equal(t, glyph, font[start:start+FontGlyphSize])
	}
}

func assertFontset(t *testing.T, v *VM) {
	t.Helper()
	memory := make([]byte, len(fontset))
	for i := range memory {
		memory[i] = v.Memory(uint16(FontStart + i))
	}
	if diff := cmp.Diff(fontset[:], memory); diff != "" {
		t.Errorf("fontset mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, byte(0), v.Memory(0x050))
}

func TestLoad(t *testing.T) {
	t.Run("copies program to program start", func(t *testing.T) {
		v := New()
		assert.NoError(t, v.Load([]byte{0xA2, 0x2A, 0x60, 0x0C}))

		assert.Equal(t, byte(0xA2), v.Memory(0x200))
		assert.Equal(t, byte(0x2A), v.Memory(0x201))
		assert.Equal(t, byte(0x60), v.Memory(0x202))
		assert.Equal(t, byte(0x0C), v.Memory(0x203))
		assert.Equal(t, byte(0x00), v.Memory(0x204))
	})

	t.Run("fills memory completely", func(t *testing.T) {
		data := make([]byte, MaxProgramSize)
		data[len(data)-1] = 0xAB

		v := New()
		assert.NoError(t, v.Load(data))
		assert.Equal(t, byte(0xAB), v.Memory(0xFFF))
	})

	t.Run("rejects oversized program", func(t *testing.T) {
		data := make([]byte, MaxProgramSize+1)
		data[0] = 0xFF

		v := New()
		err := v.Load(data)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
		assert.Equal(t, byte(0), v.Memory(ProgramStart))
	})
}

func TestReset(t *testing.T) {
	v := newTestVM(t,
		0x6A05, // ld VA, $05
		0xA000, // ld I, $000
		0xFA15, // ld DT, VA
		0xFA18, // ld ST, VA
		0x220C, // call $20C
		0x0000,
		0xD005, // drw V0, V0, $5
	)
	tickN(t, v, 6)
	assert.NoError(t, v.Keypress(3, true))
	assert.True(t, v.Display().Lit() > 0)

	v.Reset()
	fresh := New()
	assertSameState(t, fresh, v)

	v.Reset()
	assertSameState(t, fresh, v)
}

func assertSameState(t *testing.T, want, got *VM) {
	t.Helper()
	assert.Equal(t, want.memory, got.memory)
	assert.Equal(t, want.v, got.v)
	assert.Equal(t, want.i, got.i)
	assert.Equal(t, want.pc, got.pc)
	assert.Equal(t, want.sp, got.sp)
	assert.Equal(t, want.stack, got.stack)
	assert.Equal(t, want.dt, got.dt)
	assert.Equal(t, want.st, got.st)
	assert.Equal(t, want.keys, got.keys)
	if diff := cmp.Diff(want.Display().Pixels(), got.Display().Pixels()); diff != "" {
		t.Errorf("display mismatch (-want +got):\n%s", diff)
	}
}

func TestTickTimers(t *testing.T) {
	t.Run("sound timer beeps once when expiring", func(t *testing.T) {
		v := New()
		v.st = 3

		assert.False(t, v.TickTimers())
		assert.False(t, v.TickTimers())
		assert.True(t, v.TickTimers())
		assert.False(t, v.TickTimers())
		assert.False(t, v.TickTimers())
		assert.Equal(t, uint8(0), v.SoundTimer())
	})

	t.Run("delay timer counts down to zero", func(t *testing.T) {
		v := New()
		v.dt = 2

		assert.False(t, v.TickTimers())
		assert.Equal(t, uint8(1), v.DelayTimer())
		assert.False(t, v.TickTimers())
		assert.Equal(t, uint8(0), v.DelayTimer())
		assert.False(t, v.TickTimers())
		assert.Equal(t, uint8(0), v.DelayTimer())
	})

	t.Run("timers are independent", func(t *testing.T) {
		v := New()
		v.dt = 5
		v.st = 1

		assert.True(t, v.TickTimers())
		assert.Equal(t, uint8(4), v.DelayTimer())
		assert.Equal(t, uint8(0), v.SoundTimer())
	})
}

func TestKeypress(t *testing.T) {
	v := New()

	assert.NoError(t, v.Keypress(0xF, true))
	assert.True(t, v.Key(0xF))
	assert.NoError(t, v.Keypress(0xF, true))
	assert.NoError(t, v.Keypress(0xF, false))
	assert.False(t, v.Key(0xF))

	err := v.Keypress(16, true)
	assert.True(t, errors.Is(err, ErrInvalidKey))
	err = v.Keypress(-1, true)
	assert.True(t, errors.Is(err, ErrInvalidKey))
	assert.False(t, v.Key(16))
}

func TestTick_SkipScenario(t *testing.T) {
	v := newTestVM(t,
		0x6005, // ld V0, $05
		0x7003, // add V0, $03
		0x3008, // se V0, $08
		0x1204, // jp $204, skipped
		0x00E0, // cls
	)
	tickN(t, v, 3)

	assert.Equal(t, uint8(8), v.Register(0))
	assert.Equal(t, uint16(0x208), v.PC())
}

func TestTick_ClearDrawClear(t *testing.T) {
	v := newTestVM(t,
		0x00E0, // cls
		0xA20A, // ld I, $20A
		0xD011, // drw V0, V1, $1
		0x00E0, // cls
		0x0000,
		0xFF00, // sprite row
	)
	tickN(t, v, 3)
	assert.Equal(t, 8, v.Display().Lit())

	tickN(t, v, 1)
	assert.Equal(t, 0, v.Display().Lit())
	if diff := cmp.Diff(make([]bool, DisplayWidth*DisplayHeight), v.Display().Pixels()); diff != "" {
		t.Errorf("display not cleared (-want +got):\n%s", diff)
	}
}

func TestTick_Faults(t *testing.T) {
	t.Run("stack overflow", func(t *testing.T) {
		v := newTestVM(t, 0x2200) // call $200, recursing forever
		tickN(t, v, StackDepth)
		assert.Equal(t, uint8(StackDepth), v.SP())

		err := v.Tick()
		var fault *Fault
		assert.True(t, errors.As(err, &fault))
		assert.True(t, errors.Is(err, ErrStackOverflow))
		assert.Equal(t, uint16(0x200), fault.PC)
		assert.Equal(t, uint16(0x2200), fault.Opcode)
		assert.Equal(t, uint16(0x200), v.PC())
		assert.Equal(t, uint8(StackDepth), v.SP())
	})

	t.Run("stack underflow", func(t *testing.T) {
		v := newTestVM(t, 0x00EE) // ret
		err := v.Tick()
		assert.True(t, errors.Is(err, ErrStackUnderflow))
		assert.Equal(t, uint16(0x200), v.PC())
		assert.Equal(t, uint8(0), v.SP())
	})

	t.Run("program counter past memory", func(t *testing.T) {
		v := newTestVM(t,
			0x60FF, // ld V0, $FF
			0xBFFF, // jp V0, $FFF
		)
		tickN(t, v, 2)
		assert.Equal(t, uint16(0x10FE), v.PC())

		err := v.Tick()
		assert.True(t, errors.Is(err, ErrPCOutOfBounds))
		assert.Equal(t, uint16(0x10FE), v.PC())
	})

	t.Run("last full instruction is fetched", func(t *testing.T) {
		v := newTestVM(t, 0x1FFE) // jp $FFE
		tickN(t, v, 1)
		v.memory[0xFFE] = 0x6A
		v.memory[0xFFF] = 0x42

		assert.NoError(t, v.Tick())
		assert.Equal(t, uint8(0x42), v.Register(0xA))

		err := v.Tick()
		assert.True(t, errors.Is(err, ErrPCOutOfBounds))
	})
}

func TestTick_Trace(t *testing.T) {
	v := New(WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, v.Load(program(0x6123, 0x00EE)))

	assert.NoError(t, v.Tick())
	assert.Error(t, v.Tick())
	assert.Equal(t, uint8(0x23), v.Register(1))
}
