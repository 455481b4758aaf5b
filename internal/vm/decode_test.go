package vm

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeFields(t *testing.T) {
	ins := Decode(0xD3A7)

	assert.Equal(t, uint16(0xD3A7), ins.Opcode)
	assert.Equal(t, KindDRW, ins.Kind)
	assert.Equal(t, uint8(0x3), ins.X)
	assert.Equal(t, uint8(0xA), ins.Y)
	assert.Equal(t, uint8(0x7), ins.N)
	assert.Equal(t, uint8(0xA7), ins.NN)
	assert.Equal(t, uint16(0x3A7), ins.NNN)
}

func TestDecodeKind(t *testing.T) {
	tests := []struct {
		opcode uint16
		kind   Kind
	}{
		{0x00E0, KindCLS},
		{0x00EE, KindRET},
		{0x0000, KindUnknown},
		{0x01E0, KindUnknown},
		{0x0FFF, KindUnknown},
		{0x1234, KindJP},
		{0x2345, KindCALL},
		{0x3456, KindSEImm},
		{0x4567, KindSNEImm},
		{0x5670, KindSEReg},
		{0x5671, KindUnknown},
		{0x6789, KindLDImm},
		{0x789A, KindADDImm},
		{0x8AB0, KindLDReg},
		{0x8AB1, KindOR},
		{0x8AB2, KindAND},
		{0x8AB3, KindXOR},
		{0x8AB4, KindADDReg},
		{0x8AB5, KindSUB},
		{0x8AB6, KindSHR},
		{0x8AB7, KindSUBN},
		{0x8AB8, KindUnknown},
		{0x8ABD, KindUnknown},
		{0x8ABE, KindSHL},
		{0x9AB0, KindSNEReg},
		{0x9ABF, KindUnknown},
		{0xABCD, KindLDI},
		{0xBCDE, KindJPV0},
		{0xCDEF, KindRND},
		{0xDEF1, KindDRW},
		{0xE19E, KindSKP},
		{0xE1A1, KindSKNP},
		{0xE1A2, KindUnknown},
		{0xF107, KindLDVxDT},
		{0xF10A, KindLDK},
		{0xF115, KindLDDTVx},
		{0xF118, KindLDSTVx},
		{0xF11E, KindADDI},
		{0xF129, KindLDF},
		{0xF133, KindLDB},
		{0xF155, KindLDIVx},
		{0xF165, KindLDVxI},
		{0xF175, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04X", tt.opcode), func(t *testing.T) {
			assert.Equal(t, tt.kind, Decode(tt.opcode).Kind)
		})
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1234, "JP $234"},
		{0x2345, "CALL $345"},
		{0x3A12, "SE VA, $12"},
		{0x5AB0, "SE VA, VB"},
		{0x6105, "LD V1, $05"},
		{0x8126, "SHR V1"},
		{0x8127, "SUBN V1, V2"},
		{0xA2F0, "LD I, $2F0"},
		{0xB300, "JP V0, $300"},
		{0xC2FF, "RND V2, $FF"},
		{0xD015, "DRW V0, V1, $5"},
		{0xE59E, "SKP V5"},
		{0xF30A, "LD V3, K"},
		{0xF329, "LD F, V3"},
		{0xF333, "LD B, V3"},
		{0xF355, "LD [I], V3"},
		{0xF365, "LD V3, [I]"},
		{0xFFFF, ".word $FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.opcode).String())
		})
	}
}

func TestInstructionMnemonic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   string
	}{
		{"clear screen", 0x00E0, chip8.ClsName},
		{"return", 0x00EE, chip8.RetName},
		{"jump", 0x1234, chip8.JpName},
		{"call", 0x2345, chip8.CallName},
		{"draw", 0xD015, chip8.DrwName},
		{"skip if key", 0xE59E, chip8.SkpName},
		{"unknown", 0xFFFF, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.opcode).Mnemonic())
		})
	}
}

func TestInstructionIsSkip(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   bool
	}{
		{"SE", 0x3456, true},
		{"SNE", 0x4567, true},
		{"SKP", 0xE19E, true},
		{"SKNP", 0xE1A1, true},
		{"JP", 0x1234, false},
		{"CALL", 0x2345, false},
		{"unknown", 0xFFFF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.opcode).IsSkip())
		})
	}
}

func TestInstructionRedraws(t *testing.T) {
	assert.True(t, Decode(0x00E0).Redraws())
	assert.True(t, Decode(0xD120).Redraws())
	assert.False(t, Decode(0x00EE).Redraws())
	assert.False(t, Decode(0x6000).Redraws())
}
