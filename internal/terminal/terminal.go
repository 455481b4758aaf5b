// Package terminal implements an emulator frontend that renders the
// framebuffer with text glyphs and reads keys from a terminal in raw mode.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ErrNotTerminal is returned when no controlling terminal is available.
var ErrNotTerminal = errors.New("not a terminal")

// ttyPath is the controlling terminal. It is used instead of stdin and stdout
// so that log output does not interfere with the rendering.
const ttyPath = "/dev/tty"

const (
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
	escClear      = "\x1b[2J"
	escReset      = "\x1b[0m"
	bell          = "\a"
)

// Terminal is a frontend using the controlling terminal.
type Terminal struct {
	tty      *os.File
	writer   *bufio.Writer
	renderer *Renderer
	restore  *rawState
	events   chan emulator.Event
	done     chan struct{}
}

// Open switches the controlling terminal to raw mode and starts reading
// keys. The scale is reduced to fit the terminal width.
func Open(scale int, display options.Display) (*Terminal, error) {
	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrNotTerminal, ttyPath, err)
	}

	fd := int(tty.Fd())
	restore, err := enableRawMode(fd)
	if err != nil {
		_ = tty.Close()
		return nil, fmt.Errorf("enabling raw mode: %w", err)
	}

	if columns, _, err := windowSize(fd); err == nil {
		scale = fitScale(scale, columns)
	}

	t := &Terminal{
		tty:      tty,
		writer:   bufio.NewWriterSize(tty, 32*1024),
		renderer: NewRenderer(scale, display),
		restore:  restore,
		events:   make(chan emulator.Event, 64),
		done:     make(chan struct{}),
	}

	if _, err := t.writer.WriteString(escHideCursor + escClear); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("writing to terminal: %w", err)
	}

	go readEvents(tty, t.events, t.done)
	return t, nil
}

// fitScale reduces the scale so that a frame row fits into the terminal.
func fitScale(scale, columns int) int {
	if columns <= 0 {
		return scale
	}
	fitting := columns / vm.Width
	return max(options.MinScale, min(scale, fitting))
}

// Scale returns the used horizontal scale factor.
func (t *Terminal) Scale() int {
	return t.renderer.scale
}

// Render draws the framebuffer.
func (t *Terminal) Render(fb *vm.Framebuffer) error {
	if _, err := t.writer.WriteString(t.renderer.Frame(fb)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	return nil
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() error {
	if _, err := t.writer.WriteString(bell); err != nil {
		return fmt.Errorf("writing bell: %w", err)
	}
	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("flushing bell: %w", err)
	}
	return nil
}

// Events returns the key events read from the terminal.
func (t *Terminal) Events() <-chan emulator.Event {
	return t.events
}

// Close restores the terminal state and stops reading keys.
func (t *Terminal) Close() error {
	close(t.done)

	_, _ = t.writer.WriteString(escReset + escShowCursor + "\r\n")
	_ = t.writer.Flush()

	var errs []error
	if err := restoreMode(int(t.tty.Fd()), t.restore); err != nil {
		errs = append(errs, fmt.Errorf("restoring terminal mode: %w", err))
	}
	if err := t.tty.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing terminal: %w", err))
	}
	return errors.Join(errs...)
}
