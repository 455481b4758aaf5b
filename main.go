// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/fileprocessor"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// process exit codes
const (
	exitOK      = 0
	exitUsage   = 1
	exitInit    = 2
	exitRuntime = 3
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error("Parsing arguments failed", log.Err(err))
		}
		os.Exit(exitUsage)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if err := fileprocessor.ApplyConfigFile(logger, &opts); err != nil {
		logger.Error("Loading config file failed", log.Err(err))
		os.Exit(exitInit)
	}

	if opts.Disasm {
		err = fileprocessor.DisassembleFile(logger, opts, os.Stdout)
	} else {
		err = fileprocessor.ProcessFile(ctx, logger, opts, openTerminal)
	}
	os.Exit(exitCode(logger, err))
}

func openTerminal(opts options.Program) (fileprocessor.Frontend, error) {
	term, err := terminal.Open(opts.Scale, opts.Display)
	if err != nil {
		return nil, err
	}
	return term, nil
}

func exitCode(logger *log.Logger, err error) int {
	switch {
	case err == nil:
		return exitOK

	// Handle context cancellation (Ctrl+C) gracefully
	case errors.Is(err, context.Canceled):
		logger.Info("Emulation cancelled")
		return exitOK

	case errors.Is(err, loader.ErrRomLoad), errors.Is(err, emulator.ErrInit):
		logger.Error("Initialization failed", log.Err(err))
		return exitInit

	default:
		logger.Error("Emulation failed", log.Err(err))
		return exitRuntime
	}
}
