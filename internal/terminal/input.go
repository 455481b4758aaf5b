package terminal

import (
	"io"
	"unicode/utf8"

	"github.com/retroenv/retrochip8/internal/emulator"
)

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// readEvents forwards the key events read from r until reading fails or
// done is closed. The events channel is closed on return.
func readEvents(r io.Reader, events chan<- emulator.Event, done <-chan struct{}) {
	defer close(events)

	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for _, ev := range parseInput(buf[:n]) {
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// parseInput converts raw terminal input into key events. A single escape
// or Ctrl-C requests quitting, escape sequences of cursor and function keys
// are ignored.
func parseInput(data []byte) []emulator.Event {
	var events []emulator.Event

	for len(data) > 0 {
		switch data[0] {
		case keyEscape:
			if len(data) > 1 && (data[1] == '[' || data[1] == 'O') {
				data = skipEscapeSequence(data)
				continue
			}
			events = append(events, emulator.Event{Quit: true})
			data = data[1:]

		case keyCtrlC:
			events = append(events, emulator.Event{Quit: true})
			data = data[1:]

		default:
			r, size := utf8.DecodeRune(data)
			data = data[size:]
			if r == utf8.RuneError {
				continue
			}
			events = append(events, emulator.Event{Rune: r})
		}
	}

	return events
}

// skipEscapeSequence returns the data following the escape sequence at the
// start of data. Sequences end with a byte in the range 0x40 to 0x7e.
func skipEscapeSequence(data []byte) []byte {
	for i := 2; i < len(data); i++ {
		if data[i] >= 0x40 && data[i] <= 0x7e {
			return data[i+1:]
		}
	}
	return nil
}
