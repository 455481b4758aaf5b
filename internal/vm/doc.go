// Package vm implements a CHIP-8 virtual machine.
//
// # Machine Overview
//
// The machine has 4KB of memory, 16 general-purpose 8-bit registers (V0-VF),
// a 16-bit index register I, a program counter, a 16 entry call stack, a
// delay and a sound timer and a 64x32 monochrome framebuffer.
//
// # Memory Layout
//
//	0x000-0x04F: Unused interpreter area
//	0x050-0x09F: Font glyphs for the hex digits 0-F (5 bytes each)
//	0x200-0xFFF: Program area
//
// All addresses computed at runtime are masked to 12 bits, so every access
// stays inside the 4KB address space.
//
// # Driving the Machine
//
// The VM is passive. A driver calls Step for every instruction to execute,
// Tick at 60 Hz wall clock time to decrement the timers, FeedKey for every key
// press and renders the Framebuffer whenever a Step result requests a redraw:
//
//	machine := vm.New()
//	if err := machine.Load(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for {
//		res, err := machine.Step(keys)
//		...
//	}
//
// # Lenient Defaults
//
// Unknown opcodes, returns on an empty stack and calls on a full stack are
// executed as no-ops. WithStrict turns them into errors instead.
//
// The key wait instruction Fx0A halts the machine until FeedKey is called.
// WithNonBlockingKeyWait restores the behavior of interpreters that keep
// executing while a key press is pending.
package vm
