package vm

import "fmt"

// memory is the 4KB address space of the machine.
type memory [MemorySize]byte

// read returns the byte at the given address, wrapped into the address space.
func (m *memory) read(address uint16) byte {
	return m[address&addressMask]
}

// write stores a byte at the given address, wrapped into the address space.
func (m *memory) write(address uint16, value byte) {
	m[address&addressMask] = value
}

// readOpcode returns the big-endian 16-bit word at the given address.
func (m *memory) readOpcode(address uint16) uint16 {
	return uint16(m.read(address))<<8 | uint16(m.read(address+1))
}

// installFont copies the font glyphs to FontAddress.
func (m *memory) installFont() {
	copy(m[FontAddress:], fontGlyphs[:])
}

// loadProgram replaces the program area with the program bytes. Nothing is
// changed if the program does not fit.
func (m *memory) loadProgram(rom []byte) error {
	if len(rom) > MaxRomSize {
		return fmt.Errorf("program size %d exceeds %d bytes: %w", len(rom), MaxRomSize, ErrRomTooLarge)
	}
	clear(m[ProgramStart:])
	copy(m[ProgramStart:], rom)
	return nil
}
