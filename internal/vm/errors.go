package vm

import "errors"

var (
	// ErrRomTooLarge is returned by Load for programs larger than MaxRomSize.
	ErrRomTooLarge = errors.New("rom too large")

	// ErrUnknownOpcode is returned by Step in strict mode for opcodes that
	// do not decode to an instruction.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrStackOverflow is returned by Step in strict mode for a call with a
	// full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned by Step in strict mode for a return with
	// an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)
