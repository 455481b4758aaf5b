//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"golang.org/x/sys/unix"
)

type rawState struct {
	termios unix.Termios
}

// enableRawMode disables line buffering and echo. Signal generation stays
// enabled so that Ctrl-C cancels the application context.
func enableRawMode(fd int) (*rawState, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, ErrNotTerminal
	}

	state := &rawState{termios: *termios}
	raw := *termios

	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8

	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return nil, err
	}
	return state, nil
}

func restoreMode(fd int, state *rawState) error {
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, &state.termios)
}

func windowSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
