package writer

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func listing(t *testing.T, rom []byte, options Options) []string {
	t.Helper()

	buf := &bytes.Buffer{}
	w := New(rom, buf, options)
	assert.NoError(t, w.Write())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.True(t, len(lines) > 4)
	assert.Equal(t, "; ROM size: "+strconv.Itoa(len(rom))+" bytes", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "; CRC32 checksum: "))
	assert.Equal(t, "; Code base address: $0200", lines[2])
	assert.Equal(t, "", lines[3])
	return lines[4:]
}

func TestWrite(t *testing.T) {
	rom := []byte{
		0x00, 0xE0, // CLS
		0x61, 0x05, // LD V1, $05
		0xFF, 0xFF, // unknown
		0x12, 0x00, // JP $200
		0xAB, // trailing byte
	}

	lines := listing(t, rom, Options{})
	expected := []string{
		"  CLS",
		"  LD V1, $05",
		"",
		"  .byte $ff, $ff",
		"",
		"  JP $200",
		"",
		"  .byte $ab",
	}
	assert.Len(t, lines, len(expected))
	for i, line := range expected {
		assert.Equal(t, line, lines[i])
	}
}

func TestWriteOffsetComments(t *testing.T) {
	rom := []byte{
		0xA2, 0x06, // LD I, $206
		0x01, 0x23, // 0nnn is unknown
		0x00, 0xEE, // RET
	}

	lines := listing(t, rom, Options{OffsetComments: true})
	expected := []string{
		"  LD I, $206                     ; $0200  A206",
		"",
		"  .byte $01, $23                 ; $0202",
		"",
		"  RET                            ; $0204  00EE",
	}
	assert.Len(t, lines, len(expected))
	for i, line := range expected {
		assert.Equal(t, line, lines[i])
	}
}

func TestWriteIndentsSkippedInstructions(t *testing.T) {
	rom := []byte{
		0x30, 0x01, // SE V0, $01
		0x12, 0x00, // JP $200
		0xE1, 0xA1, // SKNP V1
		0xE2, 0x9E, // SKP V2
		0x00, 0xE0, // CLS
		0x00, 0xEE, // RET
	}

	lines := listing(t, rom, Options{})
	expected := []string{
		"  SE V0, $01",
		"    JP $200",
		"  SKNP V1",
		"    SKP V2",
		"    CLS",
		"  RET",
	}
	assert.Len(t, lines, len(expected))
	for i, line := range expected {
		assert.Equal(t, line, lines[i])
	}
}

func TestBundleDataWrites(t *testing.T) {
	data := make([]byte, dataBytesPerLine+2)
	for i := range data {
		data[i] = byte(i)
	}

	var lines []string
	var counts []int
	w := New(nil, &bytes.Buffer{}, Options{})
	err := w.BundleDataWrites(data, func(line string, byteCount int) error {
		lines = append(lines, line)
		counts = append(counts, byteCount)
		return nil
	})
	assert.NoError(t, err)

	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], ".byte $00, $01, "))
	assert.True(t, strings.HasSuffix(lines[0], "$0e, $0f"))
	assert.Equal(t, ".byte $10, $11", lines[1])
	assert.Equal(t, dataBytesPerLine, counts[0])
	assert.Equal(t, 2, counts[1])
}
