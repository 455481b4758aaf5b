// Package fileprocessor handles loading a ROM file and running it
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Frontend is an emulator frontend that holds resources until closed.
type Frontend interface {
	emulator.Frontend
	Close() error
}

// FrontendOpener creates the frontend for the given options.
type FrontendOpener func(opts options.Program) (Frontend, error)

// ApplyConfigFile merges the config file settings into the options. Values
// that were set on the command line are kept.
func ApplyConfigFile(logger *log.Logger, opts *options.Program) error {
	if opts.Config == "" {
		return nil
	}

	file, err := config.LoadFile(opts.Config)
	if err != nil {
		return fmt.Errorf("%w: %w", emulator.ErrInit, err)
	}

	for _, key := range file.Undecoded {
		logger.Warn("Unknown config file key", log.String("key", key))
	}

	file.Apply(opts)
	return nil
}

// ProcessFile loads the ROM file and runs it until the user quits or the
// context is canceled.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, open FrontendOpener) (err error) {
	km, err := keymap.New(opts.Keymap)
	if err != nil {
		return fmt.Errorf("%w: %w", emulator.ErrInit, err)
	}

	rom, err := loader.New().Load(opts.ROM)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	PrintInfo(logger, opts, len(rom))

	frontend, err := open(opts)
	if err != nil {
		return fmt.Errorf("%w: opening frontend: %w", emulator.ErrInit, err)
	}
	defer func() {
		if closeErr := frontend.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("closing frontend: %w", closeErr))
		}
	}()

	emu := emulator.New(logger, frontend, km, opts)
	if err := emu.Load(rom); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	return emu.Run(ctx)
}

// DisassembleFile loads the ROM file and writes its disassembly listing.
func DisassembleFile(logger *log.Logger, opts options.Program, output io.Writer) error {
	rom, err := loader.New().Load(opts.ROM)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	logger.Debug("Disassembling ROM", log.String("file", opts.ROM), log.Int("size", len(rom)))

	w := writer.New(rom, output, writer.Options{OffsetComments: true})
	if err := w.Write(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// PrintInfo prints the information about the ROM and the machine settings.
func PrintInfo(logger *log.Logger, opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", filepath.Base(opts.ROM)),
		log.Int("size", size),
		log.Int("cycles_per_frame", opts.CyclesPerFrame),
	)
	if opts.Strict {
		logger.Info("Strict mode enabled, unknown opcodes and stack errors stop the emulation")
	}
	if opts.NonBlockingKey {
		logger.Warn("Key wait instructions do not halt the machine, some ROMs will misbehave")
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}
