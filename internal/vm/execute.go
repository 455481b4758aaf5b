package vm

import "fmt"

// execute applies the state transition of a decoded instruction. The program
// counter already points to the following instruction. It returns whether
// the framebuffer should be redrawn.
//
//nolint:funlen,cyclop,gocyclo // one case per instruction kind
func (v *VM) execute(ins Instruction, keys *Keys) (bool, error) {
	x, y := ins.X, ins.Y

	switch ins.Kind {
	case KindCLS:
		v.fb.Clear()
		return true, nil

	case KindRET:
		if v.sp == 0 {
			return false, v.strictError(ins, ErrStackUnderflow)
		}
		v.sp--
		v.pc = v.stack[v.sp]

	case KindJP:
		v.pc = ins.NNN

	case KindCALL:
		if v.sp >= StackDepth {
			return false, v.strictError(ins, ErrStackOverflow)
		}
		v.stack[v.sp] = v.pc
		v.sp++
		v.pc = ins.NNN

	case KindSEImm:
		v.skipIf(v.v[x] == ins.NN)
	case KindSNEImm:
		v.skipIf(v.v[x] != ins.NN)
	case KindSEReg:
		v.skipIf(v.v[x] == v.v[y])
	case KindSNEReg:
		v.skipIf(v.v[x] != v.v[y])

	case KindLDImm:
		v.v[x] = ins.NN
	case KindADDImm:
		v.v[x] += ins.NN

	case KindLDReg:
		v.v[x] = v.v[y]
	case KindOR:
		v.v[x] |= v.v[y]
	case KindAND:
		v.v[x] &= v.v[y]
	case KindXOR:
		v.v[x] ^= v.v[y]

	// The flag producing operations compute the flag from the operands
	// first and write VF last, so for x == F the register holds the flag.
	case KindADDReg:
		sum := uint16(v.v[x]) + uint16(v.v[y])
		v.v[x] = uint8(sum)
		v.v[flagReg] = boolToFlag(sum > 0xFF)
	case KindSUB:
		flag := boolToFlag(v.v[x] > v.v[y])
		v.v[x] -= v.v[y]
		v.v[flagReg] = flag
	case KindSHR:
		flag := v.v[x] & 0x01
		v.v[x] >>= 1
		v.v[flagReg] = flag
	case KindSUBN:
		flag := boolToFlag(v.v[y] > v.v[x])
		v.v[x] = v.v[y] - v.v[x]
		v.v[flagReg] = flag
	case KindSHL:
		flag := v.v[x] >> 7
		v.v[x] <<= 1
		v.v[flagReg] = flag

	case KindLDI:
		v.i = ins.NNN
	case KindJPV0:
		v.pc = ins.NNN + uint16(v.v[0])
	case KindRND:
		v.v[x] = v.random.Byte() & ins.NN

	case KindDRW:
		var sprite [15]byte
		rows := sprite[:ins.N]
		for row := range rows {
			rows[row] = v.mem.read(v.i + uint16(row))
		}
		collision := v.fb.Draw(v.v[x], v.v[y], rows)
		v.v[flagReg] = boolToFlag(collision)
		return true, nil

	case KindSKP:
		v.skipIf(keys.Down(v.v[x]))
	case KindSKNP:
		v.skipIf(!keys.Down(v.v[x]))

	case KindLDVxDT:
		v.v[x] = v.timers.delay
	case KindLDK:
		v.latch = inputLatch{awaiting: true, target: x}
	case KindLDDTVx:
		v.timers.delay = v.v[x]
	case KindLDSTVx:
		v.timers.sound = v.v[x]
	case KindADDI:
		v.i += uint16(v.v[x])
	case KindLDF:
		v.i = GlyphAddress(v.v[x])
	case KindLDB:
		value := v.v[x]
		v.mem.write(v.i, value/100)
		v.mem.write(v.i+1, (value/10)%10)
		v.mem.write(v.i+2, value%10)
	case KindLDIVx:
		for reg := range uint16(x) + 1 {
			v.mem.write(v.i+reg, v.v[reg])
		}
	case KindLDVxI:
		for reg := range uint16(x) + 1 {
			v.v[reg] = v.mem.read(v.i + reg)
		}

	default:
		return false, v.strictError(ins, ErrUnknownOpcode)
	}

	return false, nil
}

// skipIf skips the next instruction if the condition holds.
func (v *VM) skipIf(condition bool) {
	if condition {
		v.pc += opcodeSize
	}
}

// strictError returns the error wrapped with the failing instruction in
// strict mode and nil otherwise.
func (v *VM) strictError(ins Instruction, err error) error {
	if !v.strict {
		return nil
	}
	return fmt.Errorf("opcode $%04X at $%03X: %w", ins.Opcode, (v.pc-opcodeSize)&addressMask, err)
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
