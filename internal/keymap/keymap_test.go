package keymap

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDefault(t *testing.T) {
	tests := []struct {
		physical rune
		key      uint8
	}{
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
		{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
		{'Q', 0x4}, {'V', 0xF},
	}

	m := Default()
	for _, tt := range tests {
		t.Run(string(tt.physical), func(t *testing.T) {
			key, ok := m.Lookup(tt.physical)
			assert.True(t, ok)
			assert.Equal(t, tt.key, key)
		})
	}

	_, ok := m.Lookup('p')
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	m, err := New(map[string]string{
		"k": "5",
		"L": "0xA",
		"1": "f",
	})
	assert.NoError(t, err)

	key, ok := m.Lookup('K')
	assert.True(t, ok)
	assert.Equal(t, uint8(0x5), key)

	key, ok = m.Lookup('l')
	assert.True(t, ok)
	assert.Equal(t, uint8(0xA), key)

	key, ok = m.Lookup('1')
	assert.True(t, ok)
	assert.Equal(t, uint8(0xF), key)

	key, ok = m.Lookup('w')
	assert.True(t, ok)
	assert.Equal(t, uint8(0x5), key)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
	}{
		{"multi character key", map[string]string{"ab": "1"}},
		{"empty key", map[string]string{"": "1"}},
		{"value out of range", map[string]string{"k": "10"}},
		{"value not hex", map[string]string{"k": "g"}},
		{"empty value", map[string]string{"k": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.overrides)
			assert.True(t, errors.Is(err, ErrInvalidMapping))
		})
	}
}
