package vm

// Decode splits an opcode into its operand fields and identifies the
// instruction kind. Opcodes that match no instruction decode to KindUnknown.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Kind:   decodeKind(opcode),
		X:      uint8(opcode>>8) & 0xF,
		Y:      uint8(opcode>>4) & 0xF,
		N:      uint8(opcode) & 0xF,
		NN:     uint8(opcode),
		NNN:    opcode & 0x0FFF,
	}
}

func decodeKind(opcode uint16) Kind {
	n := opcode & 0x000F
	nn := opcode & 0x00FF

	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return KindCLS
		case 0x00EE:
			return KindRET
		}
	case 0x1:
		return KindJP
	case 0x2:
		return KindCALL
	case 0x3:
		return KindSEImm
	case 0x4:
		return KindSNEImm
	case 0x5:
		if n == 0 {
			return KindSEReg
		}
	case 0x6:
		return KindLDImm
	case 0x7:
		return KindADDImm
	case 0x8:
		return decodeALU(n)
	case 0x9:
		if n == 0 {
			return KindSNEReg
		}
	case 0xA:
		return KindLDI
	case 0xB:
		return KindJPV0
	case 0xC:
		return KindRND
	case 0xD:
		return KindDRW
	case 0xE:
		switch nn {
		case 0x9E:
			return KindSKP
		case 0xA1:
			return KindSKNP
		}
	case 0xF:
		return decodeMisc(nn)
	}

	return KindUnknown
}

// decodeALU decodes the 8xyN register operations by their low nibble.
func decodeALU(n uint16) Kind {
	switch n {
	case 0x0:
		return KindLDReg
	case 0x1:
		return KindOR
	case 0x2:
		return KindAND
	case 0x3:
		return KindXOR
	case 0x4:
		return KindADDReg
	case 0x5:
		return KindSUB
	case 0x6:
		return KindSHR
	case 0x7:
		return KindSUBN
	case 0xE:
		return KindSHL
	default:
		return KindUnknown
	}
}

// decodeMisc decodes the FxNN timer, memory and input operations by their
// low byte.
func decodeMisc(nn uint16) Kind {
	switch nn {
	case 0x07:
		return KindLDVxDT
	case 0x0A:
		return KindLDK
	case 0x15:
		return KindLDDTVx
	case 0x18:
		return KindLDSTVx
	case 0x1E:
		return KindADDI
	case 0x29:
		return KindLDF
	case 0x33:
		return KindLDB
	case 0x55:
		return KindLDIVx
	case 0x65:
		return KindLDVxI
	default:
		return KindUnknown
	}
}
