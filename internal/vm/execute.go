package vm

// execute runs a decoded instruction. PC already points to the next instruction.
// Instructions that write VF as a flag compute their result from the operand
// values before the instruction and write the flag last.
func (v *VM) execute(ins Instruction) error {
	x, y := ins.X(), ins.Y()

	switch ins.Kind {
	case KindNop, KindUnknown:

	case KindCls:
		v.display.reset()

	case KindRet:
		if v.sp == 0 {
			return ErrStackUnderflow
		}
		v.sp--
		v.pc = v.stack[v.sp]

	case KindJp:
		v.pc = ins.NNN()

	case KindCall:
		if int(v.sp) >= StackDepth {
			return ErrStackOverflow
		}
		v.stack[v.sp] = v.pc
		v.sp++
		v.pc = ins.NNN()

	case KindSeImm:
		v.skipIf(v.v[x] == ins.NN())

	case KindSneImm:
		v.skipIf(v.v[x] != ins.NN())

	case KindSeReg:
		v.skipIf(v.v[x] == v.v[y])

	case KindSneReg:
		v.skipIf(v.v[x] != v.v[y])

	case KindLdImm:
		v.v[x] = ins.NN()

	case KindAddImm:
		v.v[x] += ins.NN()

	case KindLdReg:
		v.v[x] = v.v[y]

	case KindOr:
		v.v[x] |= v.v[y]

	case KindAnd:
		v.v[x] &= v.v[y]

	case KindXor:
		v.v[x] ^= v.v[y]

	case KindAddReg:
		sum := uint16(v.v[x]) + uint16(v.v[y])
		v.v[x] = uint8(sum)
		v.v[flagRegister] = boolToFlag(sum > 0xFF)

	case KindSub:
		vx, vy := v.v[x], v.v[y]
		v.v[x] = vx - vy
		v.v[flagRegister] = boolToFlag(vx >= vy)

	case KindSubn:
		vx, vy := v.v[x], v.v[y]
		v.v[x] = vy - vx
		v.v[flagRegister] = boolToFlag(vy >= vx)

	case KindShr:
		vx := v.v[x]
		v.v[x] = vx >> 1
		v.v[flagRegister] = vx & 0x01

	case KindShl:
		vx := v.v[x]
		v.v[x] = vx << 1
		v.v[flagRegister] = vx >> 7

	case KindLdI:
		v.i = ins.NNN()

	case KindJpV0:
		v.pc = ins.NNN() + uint16(v.v[0])

	case KindRnd:
		v.v[x] = v.random() & ins.NN()

	case KindDrw:
		v.draw(v.v[x], v.v[y], ins.N())

	case KindSkp:
		v.skipIf(v.keys[v.v[x]&0x0F])

	case KindSknp:
		v.skipIf(!v.keys[v.v[x]&0x0F])

	case KindLdVxDT:
		v.v[x] = v.dt

	case KindLdVxK:
		v.waitKey(x)

	case KindLdDTVx:
		v.dt = v.v[x]

	case KindLdSTVx:
		v.st = v.v[x]

	case KindAddI:
		v.i = (v.i + uint16(v.v[x])) & addressMask

	case KindLdF:
		v.i = FontStart + uint16(v.v[x]&0x0F)*FontGlyphSize

	case KindLdB:
		vx := v.v[x]
		v.writeMemory(0, vx/100)
		v.writeMemory(1, (vx/10)%10)
		v.writeMemory(2, vx%10)

	case KindStore:
		for idx := range int(x) + 1 {
			v.writeMemory(idx, v.v[idx])
		}

	case KindLoad:
		for idx := range int(x) + 1 {
			v.v[idx] = v.readMemory(idx)
		}
	}

	return nil
}

func (v *VM) skipIf(condition bool) {
	if condition {
		v.pc += opcodeSize
	}
}

// waitKey stores the lowest pressed key in VX. Without a pressed key the
// program counter is rewound so that the instruction executes again.
func (v *VM) waitKey(x uint8) {
	for key, pressed := range v.keys {
		if pressed {
			v.v[x] = uint8(key)
			return
		}
	}
	v.pc -= opcodeSize
}

// draw XORs a sprite of n rows read from memory at I onto the display.
func (v *VM) draw(x, y, n uint8) {
	originX := int(x) % DisplayWidth
	originY := int(y) % DisplayHeight

	var collision bool
	for row := range int(n) {
		if v.display.drawRow(originX, originY+row, v.readMemory(row)) {
			collision = true
		}
	}
	v.v[flagRegister] = boolToFlag(collision)
}

// readMemory reads the byte at I+offset, wrapped into the address space.
func (v *VM) readMemory(offset int) uint8 {
	return v.memory[(int(v.i)+offset)&addressMask]
}

// writeMemory writes the byte at I+offset, wrapped into the address space.
func (v *VM) writeMemory(offset int, value uint8) {
	v.memory[(int(v.i)+offset)&addressMask] = value
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
