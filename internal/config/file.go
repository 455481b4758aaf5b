package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/retrochip8/internal/options"
)

// ErrInvalidConfig is returned for config files with invalid values.
var ErrInvalidConfig = errors.New("invalid config")

// File is the content of a TOML config file. Unset values are nil and keep
// the defaults or command line values.
type File struct {
	Machine Machine           `toml:"machine"`
	Display Display           `toml:"display"`
	Keymap  map[string]string `toml:"keymap"`

	// Undecoded lists keys of the file that are not known.
	Undecoded []string `toml:"-"`
}

// Machine is the [machine] section of the config file.
type Machine struct {
	CyclesPerFrame *int    `toml:"cycles_per_frame"`
	TimerHz        *int    `toml:"timer_hz"`
	FrameRate      *int    `toml:"frame_rate"`
	Seed           *uint64 `toml:"seed"`
	Strict         *bool   `toml:"strict"`
	NonBlockingKey *bool   `toml:"nonblocking_key"`
}

// Display is the [display] section of the config file.
type Display struct {
	Scale *int   `toml:"scale"`
	On    string `toml:"on"`
	Off   string `toml:"off"`
}

// LoadFile reads and validates a TOML config file.
func LoadFile(path string) (*File, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}

	for _, key := range meta.Undecoded() {
		f.Undecoded = append(f.Undecoded, key.String())
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &f, nil
}

// Decode parses TOML config content, used for config data that does not
// come from a file.
func Decode(data string) (*File, error) {
	var f File
	meta, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	for _, key := range meta.Undecoded() {
		f.Undecoded = append(f.Undecoded, key.String())
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	positive := []struct {
		name  string
		value *int
	}{
		{"machine.cycles_per_frame", f.Machine.CyclesPerFrame},
		{"machine.timer_hz", f.Machine.TimerHz},
		{"machine.frame_rate", f.Machine.FrameRate},
	}
	for _, p := range positive {
		if p.value != nil && *p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d: %w", p.name, *p.value, ErrInvalidConfig)
		}
	}

	if (f.Display.On == "") != (f.Display.Off == "") {
		return fmt.Errorf("display.on and display.off must be set together: %w", ErrInvalidConfig)
	}
	return nil
}

// Apply merges the config file values into the program options. Options that
// were set explicitly on the command line are not overwritten.
func (f *File) Apply(opts *options.Program) {
	m := f.Machine
	setInt(opts, "cycles", &opts.CyclesPerFrame, m.CyclesPerFrame)
	setInt(opts, "hz", &opts.TimerHz, m.TimerHz)
	setInt(opts, "fps", &opts.FrameRate, m.FrameRate)
	if m.Seed != nil && !opts.Explicit["seed"] {
		opts.Seed = *m.Seed
	}
	if m.Strict != nil && !opts.Explicit["strict"] {
		opts.Strict = *m.Strict
	}
	if m.NonBlockingKey != nil && !opts.Explicit["nonblocking-key"] {
		opts.NonBlockingKey = *m.NonBlockingKey
	}

	if f.Display.Scale != nil && !opts.Explicit["scale"] {
		opts.Scale = options.ClampScale(*f.Display.Scale)
	}
	if f.Display.On != "" {
		opts.Display.On = f.Display.On
		opts.Display.Off = f.Display.Off
	}

	if len(f.Keymap) > 0 && opts.Keymap == nil {
		opts.Keymap = make(map[string]string, len(f.Keymap))
	}
	for physical, key := range f.Keymap {
		opts.Keymap[strings.ToLower(physical)] = key
	}
}

func setInt(opts *options.Program, flagName string, target *int, value *int) {
	if value != nil && !opts.Explicit[flagName] {
		*target = *value
	}
}
