package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies a decoded instruction.
type Kind uint8

// Instruction kinds, named after the opcode pattern they decode from.
const (
	KindUnknown Kind = iota // no matching pattern, executed as no-op
	KindNop                 // 0000
	KindCls                 // 00E0
	KindRet                 // 00EE
	KindJp                  // 1NNN
	KindCall                // 2NNN
	KindSeImm               // 3XNN
	KindSneImm              // 4XNN
	KindSeReg               // 5XY0
	KindLdImm               // 6XNN
	KindAddImm              // 7XNN
	KindLdReg               // 8XY0
	KindOr                  // 8XY1
	KindAnd                 // 8XY2
	KindXor                 // 8XY3
	KindAddReg              // 8XY4
	KindSub                 // 8XY5
	KindShr                 // 8XY6
	KindSubn                // 8XY7
	KindShl                 // 8XYE
	KindSneReg              // 9XY0
	KindLdI                 // ANNN
	KindJpV0                // BNNN
	KindRnd                 // CXNN
	KindDrw                 // DXYN
	KindSkp                 // EX9E
	KindSknp                // EXA1
	KindLdVxDT              // FX07
	KindLdVxK               // FX0A
	KindLdDTVx              // FX15
	KindLdSTVx              // FX18
	KindAddI                // FX1E
	KindLdF                 // FX29
	KindLdB                 // FX33
	KindStore               // FX55
	KindLoad                // FX65
)

// kinds maps the entries of the shared CHIP-8 opcode table to instruction kinds.
var kinds = map[chip8.OpcodeInfo]Kind{
	chip8.Opcode00E0: KindCls,
	chip8.Opcode00EE: KindRet,
	chip8.Opcode1000: KindJp,
	chip8.Opcode2000: KindCall,
	chip8.Opcode3000: KindSeImm,
	chip8.Opcode4000: KindSneImm,
	chip8.Opcode5000: KindSeReg,
	chip8.Opcode6000: KindLdImm,
	chip8.Opcode7000: KindAddImm,
	chip8.Opcode8000: KindLdReg,
	chip8.Opcode8001: KindOr,
	chip8.Opcode8002: KindAnd,
	chip8.Opcode8003: KindXor,
	chip8.Opcode8004: KindAddReg,
	chip8.Opcode8005: KindSub,
	chip8.Opcode8006: KindShr,
	chip8.Opcode8007: KindSubn,
	chip8.Opcode800E: KindShl,
	chip8.Opcode9000: KindSneReg,
	chip8.OpcodeA000: KindLdI,
	chip8.OpcodeB000: KindJpV0,
	chip8.OpcodeC000: KindRnd,
	chip8.OpcodeD000: KindDrw,
	chip8.OpcodeE09E: KindSkp,
	chip8.OpcodeE0A1: KindSknp,
	chip8.OpcodeF007: KindLdVxDT,
	chip8.OpcodeF00A: KindLdVxK,
	chip8.OpcodeF015: KindLdDTVx,
	chip8.OpcodeF018: KindLdSTVx,
	chip8.OpcodeF01E: KindAddI,
	chip8.OpcodeF029: KindLdF,
	chip8.OpcodeF033: KindLdB,
	chip8.OpcodeF055: KindStore,
	chip8.OpcodeF065: KindLoad,
}

// mnemonics maps the instruction kinds to the shared CHIP-8 instruction definitions.
var mnemonics = buildMnemonics()

func buildMnemonics() map[Kind]*chip8.Instruction {
	m := make(map[Kind]*chip8.Instruction, len(kinds))
	for _, opcodes := range chip8.Opcodes {
		for _, op := range opcodes {
			if kind, ok := kinds[op.Info]; ok {
				m[kind] = op.Instruction
			}
		}
	}
	return m
}

// Instruction is a decoded opcode.
type Instruction struct {
	Kind   Kind
	Opcode uint16
}

// Decode decodes an opcode into an instruction. 0x0000 decodes to KindNop,
// opcodes that match no entry of the CHIP-8 opcode table to KindUnknown.
func Decode(opcode uint16) Instruction {
	if opcode == 0x0000 {
		return Instruction{Kind: KindNop, Opcode: opcode}
	}

	for _, op := range chip8.Opcodes[opcode>>12] {
		if op.Info.Mask&opcode == op.Info.Value {
			if kind, ok := kinds[op.Info]; ok {
				return Instruction{Kind: kind, Opcode: opcode}
			}
			break
		}
	}
	return Instruction{Kind: KindUnknown, Opcode: opcode}
}

// X returns the second nibble, a register index.
func (i Instruction) X() uint8 {
	return uint8(i.Opcode>>8) & 0x0F
}

// Y returns the third nibble, a register index.
func (i Instruction) Y() uint8 {
	return uint8(i.Opcode>>4) & 0x0F
}

// N returns the lowest nibble.
func (i Instruction) N() uint8 {
	return uint8(i.Opcode) & 0x0F
}

// NN returns the lowest byte.
func (i Instruction) NN() uint8 {
	return uint8(i.Opcode)
}

// NNN returns the lowest 12 bits, an address.
func (i Instruction) NNN() uint16 {
	return i.Opcode & 0x0FFF
}

// Name returns the assembly mnemonic of the instruction, or an empty
// string for no-op and unknown opcodes.
func (i Instruction) Name() string {
	ins, ok := mnemonics[i.Kind]
	if !ok {
		return ""
	}
	return ins.Name
}

// String returns the instruction in assembly notation, for example "ld V3, $12".
// Opcodes without a mnemonic are returned as a data word.
func (i Instruction) String() string {
	name := i.Name()
	if name == "" {
		return fmt.Sprintf(".word $%04X", i.Opcode)
	}
	if params := i.operands(); params != "" {
		return name + " " + params
	}
	return name
}

func (i Instruction) operands() string {
	x, y := i.X(), i.Y()

	switch i.Kind {
	case KindJp, KindCall:
		return fmt.Sprintf("$%03X", i.NNN())
	case KindJpV0:
		return fmt.Sprintf("V0, $%03X", i.NNN())
	case KindSeImm, KindSneImm, KindLdImm, KindAddImm, KindRnd:
		return fmt.Sprintf("V%X, $%02X", x, i.NN())
	case KindSeReg, KindSneReg, KindLdReg, KindAddReg, KindOr, KindAnd, KindXor, KindSub, KindSubn:
		return fmt.Sprintf("V%X, V%X", x, y)
	case KindShr, KindShl, KindSkp, KindSknp:
		return fmt.Sprintf("V%X", x)
	case KindLdI:
		return fmt.Sprintf("I, $%03X", i.NNN())
	case KindDrw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, i.N())
	case KindLdVxDT:
		return fmt.Sprintf("V%X, DT", x)
	case KindLdVxK:
		return fmt.Sprintf("V%X, K", x)
	case KindLdDTVx:
		return fmt.Sprintf("DT, V%X", x)
	case KindLdSTVx:
		return fmt.Sprintf("ST, V%X", x)
	case KindAddI:
		return fmt.Sprintf("I, V%X", x)
	case KindLdF:
		return fmt.Sprintf("F, V%X", x)
	case KindLdB:
		return fmt.Sprintf("B, V%X", x)
	case KindStore:
		return fmt.Sprintf("[I], V%X", x)
	case KindLoad:
		return fmt.Sprintf("V%X, [I]", x)
	default:
		return ""
	}
}
