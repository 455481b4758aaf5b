//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

type rawState struct{}

func enableRawMode(int) (*rawState, error) {
	return nil, ErrNotTerminal
}

func restoreMode(int, *rawState) error {
	return nil
}

func windowSize(int) (int, int, error) {
	return 0, 0, ErrNotTerminal
}
