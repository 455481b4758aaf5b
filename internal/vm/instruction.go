package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies the operation of a decoded instruction.
type Kind uint8

// Instruction kinds, one per opcode pattern.
const (
	KindUnknown Kind = iota
	KindCLS          // 00E0
	KindRET          // 00EE
	KindJP           // 1nnn
	KindCALL         // 2nnn
	KindSEImm        // 3xnn
	KindSNEImm       // 4xnn
	KindSEReg        // 5xy0
	KindLDImm        // 6xnn
	KindADDImm       // 7xnn
	KindLDReg        // 8xy0
	KindOR           // 8xy1
	KindAND          // 8xy2
	KindXOR          // 8xy3
	KindADDReg       // 8xy4
	KindSUB          // 8xy5
	KindSHR          // 8xy6
	KindSUBN         // 8xy7
	KindSHL          // 8xyE
	KindSNEReg       // 9xy0
	KindLDI          // Annn
	KindJPV0         // Bnnn
	KindRND          // Cxnn
	KindDRW          // Dxyn
	KindSKP          // Ex9E
	KindSKNP         // ExA1
	KindLDVxDT       // Fx07
	KindLDK          // Fx0A
	KindLDDTVx       // Fx15
	KindLDSTVx       // Fx18
	KindADDI         // Fx1E
	KindLDF          // Fx29
	KindLDB          // Fx33
	KindLDIVx        // Fx55
	KindLDVxI        // Fx65
)

// Instruction is a decoded opcode with all of its operand fields extracted.
// Fields that the kind does not use are still filled from the opcode bits.
type Instruction struct {
	Opcode uint16
	Kind   Kind
	X      uint8  // bits 8-11
	Y      uint8  // bits 4-7
	N      uint8  // bits 0-3
	NN     uint8  // bits 0-7
	NNN    uint16 // bits 0-11
}

// Redraws returns whether executing the instruction requests a redraw.
func (i Instruction) Redraws() bool {
	return i.Kind == KindCLS || i.Kind == KindDRW
}

// Mnemonic returns the instruction name as defined by the CHIP-8 opcode
// table, or an empty string for unknown opcodes.
func (i Instruction) Mnemonic() string {
	if i.Kind == KindUnknown {
		return ""
	}

	for _, op := range chip8.Opcodes[int(i.Opcode>>12)] {
		if op.Instruction != nil && op.Info.Mask&i.Opcode == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return ""
}

// IsSkip returns true for the conditional skip instructions.
func (i Instruction) IsSkip() bool {
	name := i.Mnemonic()
	return name != "" && chip8.SkipInstructions.Contains(name)
}

// String returns the instruction in assembler syntax.
func (i Instruction) String() string {
	switch i.Kind {
	case KindCLS:
		return "CLS"
	case KindRET:
		return "RET"
	case KindJP:
		return fmt.Sprintf("JP $%03X", i.NNN)
	case KindCALL:
		return fmt.Sprintf("CALL $%03X", i.NNN)
	case KindJPV0:
		return fmt.Sprintf("JP V0, $%03X", i.NNN)
	case KindLDI:
		return fmt.Sprintf("LD I, $%03X", i.NNN)
	case KindSEImm, KindSNEImm, KindLDImm, KindADDImm, KindRND:
		return fmt.Sprintf("%s V%X, $%02X", kindNames[i.Kind], i.X, i.NN)
	case KindSEReg, KindSNEReg, KindLDReg, KindOR, KindAND, KindXOR, KindADDReg, KindSUB, KindSUBN:
		return fmt.Sprintf("%s V%X, V%X", kindNames[i.Kind], i.X, i.Y)
	case KindSHR, KindSHL, KindSKP, KindSKNP:
		return fmt.Sprintf("%s V%X", kindNames[i.Kind], i.X)
	case KindDRW:
		return fmt.Sprintf("DRW V%X, V%X, $%X", i.X, i.Y, i.N)
	case KindLDVxDT:
		return fmt.Sprintf("LD V%X, DT", i.X)
	case KindLDK:
		return fmt.Sprintf("LD V%X, K", i.X)
	case KindLDDTVx:
		return fmt.Sprintf("LD DT, V%X", i.X)
	case KindLDSTVx:
		return fmt.Sprintf("LD ST, V%X", i.X)
	case KindADDI:
		return fmt.Sprintf("ADD I, V%X", i.X)
	case KindLDF:
		return fmt.Sprintf("LD F, V%X", i.X)
	case KindLDB:
		return fmt.Sprintf("LD B, V%X", i.X)
	case KindLDIVx:
		return fmt.Sprintf("LD [I], V%X", i.X)
	case KindLDVxI:
		return fmt.Sprintf("LD V%X, [I]", i.X)
	default:
		return fmt.Sprintf(".word $%04X", i.Opcode)
	}
}

var kindNames = map[Kind]string{
	KindSEImm:  "SE",
	KindSNEImm: "SNE",
	KindSEReg:  "SE",
	KindSNEReg: "SNE",
	KindLDImm:  "LD",
	KindLDReg:  "LD",
	KindADDImm: "ADD",
	KindADDReg: "ADD",
	KindOR:     "OR",
	KindAND:    "AND",
	KindXOR:    "XOR",
	KindSUB:    "SUB",
	KindSUBN:   "SUBN",
	KindSHR:    "SHR",
	KindSHL:    "SHL",
	KindRND:    "RND",
	KindSKP:    "SKP",
	KindSKNP:   "SKNP",
}
