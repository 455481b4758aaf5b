// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses the command line flags and positional arguments.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	opts := options.NewProgram()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}
	if err := validateMachine(flags, opts.Machine); err != nil {
		return opts, err
	}

	opts.ROM = args[0]
	if len(args) > 1 {
		scale, err := strconv.Atoi(args[1])
		if err != nil {
			return opts, &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("invalid scale '%s', expected a number between %d and %d", args[1], options.MinScale, options.MaxScale),
			}
		}
		opts.Scale = scale
		opts.Explicit["scale"] = true
	}
	opts.Scale = options.ClampScale(opts.Scale)

	flags.Visit(func(f *flag.Flag) {
		opts.Explicit[f.Name] = true
	})

	if opts.Trace {
		opts.Debug = true
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "missing rom path argument"
	}
	return e.msg
}

// ShowUsage prints the usage help to stderr.
func (e *UsageError) ShowUsage() {
	w := e.flags.Output()
	if e.msg != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	_, _ = fmt.Fprintf(w, "usage: retrochip8 [options] <rom_path> [scale:%d-%d, default %d]\n\n",
		options.MinScale, options.MaxScale, options.DefaultScale)
	e.flags.PrintDefaults()
	_, _ = fmt.Fprintln(w)
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	if len(args) > 2 {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s", args[2]),
		}
	}

	for i, arg := range args {
		if i > 0 && len(arg) > 1 && arg[0] == '-' && (arg[1] < '0' || arg[1] > '9') {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after rom file, please pass the rom file and scale as last arguments", arg),
			}
		}
	}
	return nil
}

// validateMachine checks that the rate and cycle options are positive
func validateMachine(flags *flag.FlagSet, machine options.Machine) error {
	values := []struct {
		name  string
		value int
	}{
		{"cycles", machine.CyclesPerFrame},
		{"hz", machine.TimerHz},
		{"fps", machine.FrameRate},
	}

	for _, v := range values {
		if v.value <= 0 {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("invalid value %d for -%s, expected a positive number", v.value, v.name),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Config, "c", "", "TOML config file with machine, display and keymap settings")
	flags.IntVar(&opts.CyclesPerFrame, "cycles", options.DefaultCyclesPerFrame, "instructions executed per frame")
	flags.IntVar(&opts.TimerHz, "hz", options.DefaultTimerHz, "delay and sound timer rate in Hz")
	flags.IntVar(&opts.FrameRate, "fps", options.DefaultFrameRate, "frames per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number instruction, 0 uses the process generator")
	flags.BoolVar(&opts.Strict, "strict", false, "stop on unknown opcodes and stack overflows or underflows")
	flags.BoolVar(&opts.NonBlockingKey, "nonblocking-key", false, "keep executing instructions while waiting for a key press")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the rom instead of running it")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
