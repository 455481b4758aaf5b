package vm

// Memory layout and machine dimensions.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the address that programs are loaded to and where
	// execution begins.
	ProgramStart = 0x200

	// FontAddress is the address of the first font glyph.
	FontAddress = 0x050

	// MaxRomSize is the largest program that fits between ProgramStart and
	// the end of memory.
	MaxRomSize = MemorySize - ProgramStart

	// RegisterCount is the number of general-purpose V registers.
	RegisterCount = 16

	// StackDepth is the number of return addresses the call stack can hold.
	StackDepth = 16

	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 16

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5
)

const (
	addressMask = 0x0FFF
	opcodeSize  = 2
	flagReg     = 0xF
)
