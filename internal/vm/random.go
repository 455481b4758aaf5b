package vm

import "math/rand/v2"

// ByteSource provides the random bytes used by the Cxnn instruction.
type ByteSource interface {
	Byte() uint8
}

// ByteSourceFunc adapts a function to the ByteSource interface.
type ByteSourceFunc func() uint8

// Byte returns the result of calling f.
func (f ByteSourceFunc) Byte() uint8 {
	return f()
}

// NewSeededSource returns a deterministic ByteSource for the given seed.
func NewSeededSource(seed uint64) ByteSource {
	return &seededSource{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

type seededSource struct {
	rnd *rand.Rand
}

func (s *seededSource) Byte() uint8 {
	return uint8(s.rnd.UintN(256))
}

// globalSource uses the process wide generator of math/rand/v2.
type globalSource struct{}

func (globalSource) Byte() uint8 {
	return uint8(rand.UintN(256))
}
