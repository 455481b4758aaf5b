// Package writer implements the disassembly listing output of a ROM.
package writer

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Options of the writer.
type Options struct {
	OffsetComments bool // append the address and opcode of every line as comment
}

// Writer writes a ROM as assembler listing. Words that decode to a known
// instruction are written as code, all other bytes as data.
type Writer struct {
	rom     []byte
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(rom []byte, writer io.Writer, options Options) *Writer {
	return &Writer{
		rom:     rom,
		options: options,
		writer:  writer,
	}
}

// Write writes the comment header and the listing of the whole ROM.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}

	previousLineWasCode := true
	conditional := false
	for index := 0; index < len(w.rom); {
		ins, ok := w.instructionAt(index)

		// print an empty line in case of data after code and vice versa
		if index > 0 && ok != previousLineWasCode {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = ok

		if !ok {
			conditional = false
			count := w.dataLength(index)
			if err := w.writeData(index, count); err != nil {
				return err
			}
			index += count
			continue
		}

		if err := w.writeCodeLine(index, ins, conditional); err != nil {
			return fmt.Errorf("writing code line: %w", err)
		}
		// instructions that can be skipped are indented
		conditional = ins.IsSkip()
		index += 2
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02x, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "  %s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

// WriteCommentHeader writes the ROM size, CRC32 checksum and code base address as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; ROM size: %d bytes\n", len(w.rom)); err != nil {
		return fmt.Errorf("writing rom size: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", crc32.ChecksumIEEE(w.rom)); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04x\n\n", vm.ProgramStart); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

// instructionAt decodes the word at the ROM index. It returns false for a
// trailing single byte or an unknown opcode.
func (w Writer) instructionAt(index int) (vm.Instruction, bool) {
	if index+1 >= len(w.rom) {
		return vm.Instruction{}, false
	}

	opcode := uint16(w.rom[index])<<8 | uint16(w.rom[index+1])
	ins := vm.Decode(opcode)
	return ins, ins.Kind != vm.KindUnknown
}

// dataLength returns the number of bytes starting at index until the next
// known instruction.
func (w Writer) dataLength(start int) int {
	index := start
	for index < len(w.rom) {
		if _, ok := w.instructionAt(index); ok {
			break
		}
		index += 2
	}
	return min(index, len(w.rom)) - start
}

func (w Writer) writeCodeLine(index int, ins vm.Instruction, conditional bool) error {
	code := ins.String()
	if conditional {
		code = "  " + code
	}

	if !w.options.OffsetComments {
		_, err := fmt.Fprintf(w.writer, "  %s\n", code)
		return err
	}

	comment := fmt.Sprintf("$%04X  %04X", address(index), ins.Opcode)
	_, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", code, comment)
	return err
}

func (w Writer) writeData(start, count int) error {
	if !w.options.OffsetComments {
		if err := w.BundleDataWrites(w.rom[start:start+count], nil); err != nil {
			return fmt.Errorf("writing data: %w", err)
		}
		return nil
	}

	currentIndex := start
	lineWriter := func(line string, byteCount int) error {
		comment := fmt.Sprintf("$%04X", address(currentIndex))
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", line, comment); err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}
		currentIndex += byteCount
		return nil
	}

	if err := w.BundleDataWrites(w.rom[start:start+count], lineWriter); err != nil {
		return fmt.Errorf("writing data: %w", err)
	}
	return nil
}

func address(index int) int {
	return vm.ProgramStart + index
}
