package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load rom file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		rom, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, 4)
		assert.Equal(t, byte(0x12), rom[0])
		assert.Equal(t, byte(0x78), rom[3])
	})

	t.Run("load maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, vm.MaxRomSize))

		rom, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, vm.MaxRomSize)
	})

	t.Run("error on too large file", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, vm.MaxRomSize+1))

		_, err := New().Load(tmpFile)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrRomLoad))
		assert.True(t, errors.Is(err, vm.ErrRomTooLarge))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrRomLoad))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		rom, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, 0)
	})
}

func TestLoadFromReader(t *testing.T) {
	t.Run("reader data", func(t *testing.T) {
		rom, err := New().LoadFromReader(bytes.NewReader([]byte{0x00, 0xE0}))
		assert.NoError(t, err)
		assert.Len(t, rom, 2)
	})

	t.Run("read error", func(t *testing.T) {
		_, err := New().LoadFromReader(iotest.ErrReader(errors.New("broken")))
		assert.True(t, errors.Is(err, ErrRomLoad))
		assert.ErrorContains(t, err, "broken")
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
