package vm

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Memory layout and machine sizes.
const (
	MemorySize     = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart

	RegisterCount = 16
	StackDepth    = 16
	KeyCount      = 16

	flagRegister = 0xF
	addressMask  = MemorySize - 1
	opcodeSize   = 2
)

// VM is a CHIP-8 virtual machine.
type VM struct {
	memory [MemorySize]byte
	v      [RegisterCount]uint8
	i      uint16
	pc     uint16
	sp     uint8
	stack  [StackDepth]uint16
	dt     uint8
	st     uint8
	keys   [KeyCount]bool

	display Display

	random func() uint8
	logger *log.Logger // optional instruction tracing
}

// Option configures a VM.
type Option func(*VM)

// WithRandom sets the source of random bytes used by the CXNN instruction.
func WithRandom(fn func() uint8) Option {
	return func(v *VM) {
		v.random = fn
	}
}

// WithSeed makes the CXNN instruction deterministic for the given seed.
func WithSeed(seed uint64) Option {
	rng := rand.New(rand.NewPCG(seed, seed))
	return WithRandom(func() uint8 {
		return uint8(rng.UintN(256))
	})
}

// WithLogger enables debug tracing of every executed instruction.
func WithLogger(logger *log.Logger) Option {
	return func(v *VM) {
		v.logger = logger
	}
}

// New returns a new machine in its initial state.
func New(options ...Option) *VM {
	v := &VM{
		random: func() uint8 {
			return uint8(rand.UintN(256))
		},
	}
	for _, option := range options {
		option(v)
	}
	v.Reset()
	return v
}

// Reset restores the initial machine state. The fontset is reloaded and
// any loaded program is cleared.
func (v *VM) Reset() {
	v.memory = [MemorySize]byte{}
	copy(v.memory[FontStart:], fontset[:])

	v.v = [RegisterCount]uint8{}
	v.i = 0
	v.pc = ProgramStart
	v.sp = 0
	v.stack = [StackDepth]uint16{}
	v.dt = 0
	v.st = 0
	v.keys = [KeyCount]bool{}
	v.display.reset()
}

// Load copies the program into memory starting at ProgramStart.
func (v *VM) Load(data []byte) error {
	if len(data) > MaxProgramSize {
		return fmt.Errorf("%w: size %d exceeds %d bytes", ErrProgramTooLarge, len(data), MaxProgramSize)
	}
	copy(v.memory[ProgramStart:], data)
	return nil
}

// Tick performs a single fetch-decode-execute cycle.
// A returned *Fault leaves the machine state unchanged.
func (v *VM) Tick() error {
	pc := v.pc
	opcode, err := v.fetch()
	if err != nil {
		return v.fault(pc, 0, err)
	}

	ins := Decode(opcode)
	if v.logger != nil {
		v.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", opcode),
			log.String("instruction", ins.String()))
	}

	if err := v.execute(ins); err != nil {
		v.pc = pc
		return v.fault(pc, opcode, err)
	}
	return nil
}

// TickTimers decrements the delay and sound timers and is expected to be
// called at 60 Hz. It returns true when the sound timer expires with this
// tick, which is when a beep should be played.
func (v *VM) TickTimers() bool {
	if v.dt > 0 {
		v.dt--
	}

	var beep bool
	if v.st > 0 {
		beep = v.st == 1
		v.st--
	}
	return beep
}

// Keypress sets the state of a keypad key.
func (v *VM) Keypress(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	v.keys[key] = pressed
	return nil
}

// Key returns whether the given keypad key is pressed.
// Keys outside of 0x0-0xF are never pressed.
func (v *VM) Key(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return v.keys[key]
}

// Display returns the display buffer, which is updated in place by Tick.
// Use Display.Pixels for a snapshot.
func (v *VM) Display() *Display {
	return &v.display
}

// PC returns the program counter.
func (v *VM) PC() uint16 {
	return v.pc
}

// I returns the index register.
func (v *VM) I() uint16 {
	return v.i
}

// SP returns the stack pointer.
func (v *VM) SP() uint8 {
	return v.sp
}

// Register returns the value of register VX, x being masked to 0x0-0xF.
func (v *VM) Register(x int) uint8 {
	return v.v[x&0x0F]
}

// DelayTimer returns the delay timer.
func (v *VM) DelayTimer() uint8 {
	return v.dt
}

// SoundTimer returns the sound timer.
func (v *VM) SoundTimer() uint8 {
	return v.st
}

// Memory returns the byte at the given address, wrapped into the address space.
func (v *VM) Memory(address uint16) uint8 {
	return v.memory[address&addressMask]
}

func (v *VM) fetch() (uint16, error) {
	if int(v.pc)+1 >= MemorySize {
		return 0, ErrPCOutOfBounds
	}
	opcode := uint16(v.memory[v.pc])<<8 | uint16(v.memory[v.pc+1])
	v.pc += opcodeSize
	return opcode, nil
}

func (v *VM) fault(pc, opcode uint16, err error) error {
	if v.logger != nil {
		v.logger.Debug("Machine fault",
			log.Hex("pc", pc),
			log.Hex("opcode", opcode),
			log.Err(err))
	}
	return &Fault{PC: pc, Opcode: opcode, Err: err}
}
