// Package vm implements the CHIP-8 virtual CPU engine.
//
// # Machine Overview
//
// The engine owns the complete machine state and performs no I/O:
//   - 4KB of memory (0x000-0xFFF), the fontset lives at 0x000-0x04F
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - Index register I, program counter PC and a 16 entry call stack
//   - 64x32 monochrome display buffer
//   - 16 key hexadecimal keypad
//   - Delay and sound timers, decremented at 60 Hz by the host
//
// # Execution Model
//
// The host loads a program once and then drives the machine:
//
//	machine := vm.New()
//	if err := machine.Load(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for frame := range frames {
//		for range cyclesPerFrame {
//			if err := machine.Tick(); err != nil {
//				return err
//			}
//		}
//		beep := machine.TickTimers()
//		render(machine.Display(), beep)
//	}
//
// Tick performs exactly one fetch-decode-execute cycle. Opcodes are decoded
// into an Instruction with a closed Kind enumeration before being executed.
// Unknown opcodes and 0x0000 are silent no-ops.
//
// # Quirks
//
// The engine follows a fixed set of behaviors where CHIP-8 implementations
// diverge:
//   - 8XY6 and 8XYE shift VX in place and ignore VY
//   - FX55 and FX65 leave I unchanged
//   - BNNN jumps to NNN + V0
//   - Sprites wrap around the display edges per pixel
//   - FX1E wraps I inside the 12 bit address space and does not touch VF
//   - FX15 sets the delay timer, FX18 the sound timer
//
// # Faults
//
// Conditions that CHIP-8 leaves undefined are reported as a
// *Fault from Tick: fetching past the end of memory, stack overflow and
// stack underflow. A faulting Tick does not modify the machine state.
//
// The VM is not safe for concurrent use.
package vm
