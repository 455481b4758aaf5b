// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

// ErrRomLoad is wrapped by all errors returned from loading a ROM.
var ErrRomLoad = errors.New("rom load failed")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 ROM file. Files larger than the program area of
// the machine are rejected with an error that also wraps vm.ErrRomTooLarge.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file %s: %w", ErrRomLoad, path, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", path, err)
	}
	return rom, nil
}

// LoadFromReader reads a raw CHIP-8 ROM from a reader. At most one byte more
// than the maximum ROM size is read.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	rom, err := io.ReadAll(io.LimitReader(reader, vm.MaxRomSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading rom: %w", ErrRomLoad, err)
	}

	if len(rom) > vm.MaxRomSize {
		return nil, fmt.Errorf("%w: size exceeds %d bytes: %w", ErrRomLoad, vm.MaxRomSize, vm.ErrRomTooLarge)
	}
	return rom, nil
}
