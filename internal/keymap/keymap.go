// Package keymap maps physical keyboard keys to the keys of the CHIP-8 hex
// keypad.
//
// The default layout uses the left block of a QWERTY keyboard:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <=   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
package keymap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidMapping is returned for keymap overrides that can not be parsed.
var ErrInvalidMapping = errors.New("invalid key mapping")

// defaultLayout lists the physical keys for the hex keys 0x0-0xF.
var defaultLayout = [16]rune{
	'x', '1', '2', '3',
	'q', 'w', 'e', 'a',
	's', 'd', 'z', 'c',
	'4', 'r', 'f', 'v',
}

// Map maps physical keys to hex keypad keys. Letters are matched case
// insensitively.
type Map struct {
	keys map[rune]uint8
}

// Default returns the default QWERTY layout.
func Default() *Map {
	m := &Map{
		keys: make(map[rune]uint8, len(defaultLayout)),
	}
	for key, physical := range defaultLayout {
		m.keys[physical] = uint8(key)
	}
	return m
}

// New returns the default layout with the given overrides applied. The
// overrides map a single character physical key to a hex key given as
// "0"-"F" or "0x0"-"0xF".
func New(overrides map[string]string) (*Map, error) {
	m := Default()

	for physical, key := range overrides {
		r, size := utf8.DecodeRuneInString(physical)
		if r == utf8.RuneError || size != len(physical) {
			return nil, fmt.Errorf("physical key '%s' is not a single character: %w", physical, ErrInvalidMapping)
		}

		value, err := parseHexKey(key)
		if err != nil {
			return nil, fmt.Errorf("mapping for '%s': %w", physical, err)
		}
		m.keys[unicode.ToLower(r)] = value
	}

	return m, nil
}

// Lookup returns the hex key for a physical key.
func (m *Map) Lookup(r rune) (uint8, bool) {
	key, ok := m.keys[unicode.ToLower(r)]
	return key, ok
}

func parseHexKey(s string) (uint8, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	value, err := strconv.ParseUint(s, 16, 8)
	if err != nil || value > 0xF {
		return 0, fmt.Errorf("hex key '%s' is not in range 0-F: %w", s, ErrInvalidMapping)
	}
	return uint8(value), nil
}
