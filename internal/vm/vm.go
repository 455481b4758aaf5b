package vm

import "fmt"

// VM is a CHIP-8 virtual machine. It is not safe for concurrent use.
type VM struct {
	mem    memory
	v      [RegisterCount]uint8
	i      uint16
	pc     uint16
	stack  [StackDepth]uint16
	sp     uint8
	timers timers
	fb     Framebuffer
	latch  inputLatch

	random         ByteSource
	strict         bool
	nonBlockingKey bool
}

// Option configures a VM.
type Option func(*VM)

// WithRandom sets the source of the random bytes used by Cxnn.
func WithRandom(src ByteSource) Option {
	return func(v *VM) {
		v.random = src
	}
}

// WithStrict makes Step return errors for unknown opcodes and for stack
// overflows and underflows instead of ignoring them.
func WithStrict() Option {
	return func(v *VM) {
		v.strict = true
	}
}

// WithNonBlockingKeyWait makes Fx0A record the target register without
// halting, execution continues until FeedKey delivers the key.
func WithNonBlockingKeyWait() Option {
	return func(v *VM) {
		v.nonBlockingKey = true
	}
}

// Result describes the outcome of a single Step.
type Result struct {
	// Address is the address the instruction was fetched from.
	Address uint16
	// Instruction is the executed instruction.
	Instruction Instruction
	// Redraw is set after a clear screen or draw instruction.
	Redraw bool
	// Halted is set if no instruction was executed because the machine is
	// waiting for a key press.
	Halted bool
	// AwaitingKey is set while a key wait instruction is pending.
	AwaitingKey bool
}

// State is a snapshot of the machine registers.
type State struct {
	V     [RegisterCount]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack [StackDepth]uint16
	DT    uint8
	ST    uint8
}

// New returns a reset machine with the font installed.
func New(opts ...Option) *VM {
	v := &VM{
		random: globalSource{},
	}
	for _, opt := range opts {
		opt(v)
	}
	v.Reset()
	return v
}

// Reset clears memory, registers, timers, the framebuffer and a pending key
// wait, installs the font and sets the program counter to ProgramStart.
// Options passed to New are kept.
func (v *VM) Reset() {
	v.mem = memory{}
	v.v = [RegisterCount]uint8{}
	v.i = 0
	v.pc = ProgramStart
	v.stack = [StackDepth]uint16{}
	v.sp = 0
	v.timers = timers{}
	v.fb.Clear()
	v.latch = inputLatch{}

	v.mem.installFont()
}

// Load copies a program to ProgramStart, clears the rest of the program
// area and points the program counter at it. Programs larger than MaxRomSize are rejected with ErrRomTooLarge and
// leave the machine unchanged.
func (v *VM) Load(rom []byte) error {
	if err := v.mem.loadProgram(rom); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	v.pc = ProgramStart
	return nil
}

// Step fetches, decodes and executes a single instruction. keys is the
// current state of the keypad, used by the key skip instructions.
//
// While a key wait is pending the machine is halted and Step returns without
// executing anything, unless WithNonBlockingKeyWait was set. Errors are only
// returned in strict mode, the instruction is then treated as a no-op.
func (v *VM) Step(keys Keys) (Result, error) {
	if v.latch.awaiting && !v.nonBlockingKey {
		return Result{
			Address:     v.pc & addressMask,
			Halted:      true,
			AwaitingKey: true,
		}, nil
	}

	address := v.pc & addressMask
	ins := Decode(v.mem.readOpcode(address))
	v.pc += opcodeSize

	redraw, err := v.execute(ins, &keys)
	res := Result{
		Address:     address,
		Instruction: ins,
		Redraw:      redraw,
		AwaitingKey: v.latch.awaiting,
	}
	return res, err
}

// Framebuffer returns the display memory. The caller must not modify it.
func (v *VM) Framebuffer() *Framebuffer {
	return &v.fb
}

// State returns a snapshot of the registers, stack and timers.
func (v *VM) State() State {
	return State{
		V:     v.v,
		I:     v.i,
		PC:    v.pc,
		SP:    v.sp,
		Stack: v.stack,
		DT:    v.timers.delay,
		ST:    v.timers.sound,
	}
}

// Memory returns a copy of the byte at the given address.
func (v *VM) Memory(address uint16) byte {
	return v.mem.read(address)
}
