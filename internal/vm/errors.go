package vm

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrProgramTooLarge is returned when a program does not fit into the program memory area.
	ErrProgramTooLarge = errors.New("program does not fit into memory")
	// ErrInvalidKey is returned for keypad indexes outside of 0x0-0xF.
	ErrInvalidKey = errors.New("invalid key")

	ErrPCOutOfBounds  = fmt.Errorf("program counter %w", chip8.ErrMemoryOutOfBounds)
	ErrStackOverflow  = chip8.ErrStackOverflow
	ErrStackUnderflow = chip8.ErrStackUnderflow
)

// Fault describes an instruction that could not be executed.
// The machine state is left as it was before the faulting Tick.
type Fault struct {
	PC     uint16 // address of the faulting instruction
	Opcode uint16 // zero if the opcode could not be fetched
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("machine fault at $%03X (opcode $%04X): %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
