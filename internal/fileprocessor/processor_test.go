package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type testFrontend struct {
	events  chan emulator.Event
	renders int
	closed  bool
}

func (f *testFrontend) Render(*vm.Framebuffer) error {
	f.renders++
	return nil
}

func (f *testFrontend) Beep() error { return nil }

func (f *testFrontend) Events() <-chan emulator.Event { return f.events }

func (f *testFrontend) Close() error {
	f.closed = true
	return nil
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func quittingOpener(frontend *testFrontend) FrontendOpener {
	return func(options.Program) (Frontend, error) {
		frontend.events <- emulator.Event{Quit: true}
		return frontend, nil
	}
}

func TestProcessFile(t *testing.T) {
	opts := options.NewProgram()
	opts.ROM = writeFile(t, "loop.ch8", []byte{0x12, 0x00})

	frontend := &testFrontend{events: make(chan emulator.Event, 1)}
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, quittingOpener(frontend))
	assert.NoError(t, err)
	assert.True(t, frontend.closed)
	assert.Equal(t, 1, frontend.renders)
}

func TestProcessFileMissingRom(t *testing.T) {
	opts := options.NewProgram()
	opts.ROM = filepath.Join(t.TempDir(), "missing.ch8")

	opened := false
	open := func(options.Program) (Frontend, error) {
		opened = true
		return nil, errors.New("unexpected")
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, open)
	assert.True(t, errors.Is(err, loader.ErrRomLoad))
	assert.False(t, opened)
}

func TestProcessFileFrontendError(t *testing.T) {
	opts := options.NewProgram()
	opts.ROM = writeFile(t, "loop.ch8", []byte{0x12, 0x00})

	open := func(options.Program) (Frontend, error) {
		return nil, errors.New("no terminal")
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, open)
	assert.True(t, errors.Is(err, emulator.ErrInit))
	assert.ErrorContains(t, err, "no terminal")
}

func TestProcessFileInvalidKeymap(t *testing.T) {
	opts := options.NewProgram()
	opts.ROM = writeFile(t, "loop.ch8", []byte{0x12, 0x00})
	opts.Keymap = map[string]string{"k": "g"}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, nil)
	assert.True(t, errors.Is(err, emulator.ErrInit))
	assert.True(t, errors.Is(err, keymap.ErrInvalidMapping))
}

func TestProcessFileStrictError(t *testing.T) {
	opts := options.NewProgram()
	opts.ROM = writeFile(t, "ret.ch8", []byte{0x00, 0xEE})
	opts.Strict = true

	frontend := &testFrontend{events: make(chan emulator.Event, 1)}
	open := func(options.Program) (Frontend, error) {
		return frontend, nil
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, open)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.True(t, frontend.closed)
}

func TestApplyConfigFile(t *testing.T) {
	opts := options.NewProgram()
	opts.Config = writeFile(t, "config.toml", []byte(`
[machine]
cycles_per_frame = 20

[extra]
value = 1
`))

	err := ApplyConfigFile(log.NewTestLogger(t), &opts)
	assert.NoError(t, err)
	assert.Equal(t, 20, opts.CyclesPerFrame)
}

func TestApplyConfigFileInvalid(t *testing.T) {
	opts := options.NewProgram()
	opts.Config = writeFile(t, "config.toml", []byte("[machine]\ncycles_per_frame = 0\n"))

	err := ApplyConfigFile(log.NewTestLogger(t), &opts)
	assert.True(t, errors.Is(err, emulator.ErrInit))
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestApplyConfigFileNotSet(t *testing.T) {
	opts := options.NewProgram()
	assert.NoError(t, ApplyConfigFile(log.NewTestLogger(t), &opts))
	assert.Equal(t, options.DefaultCyclesPerFrame, opts.CyclesPerFrame)
}

func TestDisassembleFile(t *testing.T) {
	opts := options.NewProgram()
	opts.ROM = writeFile(t, "loop.ch8", []byte{0x00, 0xE0, 0x12, 0x00})

	buf := &bytes.Buffer{}
	err := DisassembleFile(log.NewTestLogger(t), opts, buf)
	assert.NoError(t, err)

	output := buf.String()
	assert.True(t, strings.Contains(output, "; ROM size: 4 bytes"))
	assert.True(t, strings.Contains(output, "CLS"))
	assert.True(t, strings.Contains(output, "JP $200"))
}

func TestDisassembleFileMissingRom(t *testing.T) {
	opts := options.NewProgram()
	opts.ROM = filepath.Join(t.TempDir(), "missing.ch8")

	err := DisassembleFile(log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.True(t, errors.Is(err, loader.ErrRomLoad))
}
