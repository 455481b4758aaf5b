// Package options contains the program options.
package options

// Defaults of the machine and display options.
const (
	DefaultScale          = 12
	MinScale              = 1
	MaxScale              = 64
	DefaultCyclesPerFrame = 10
	DefaultTimerHz        = 60
	DefaultFrameRate      = 60
)

// Positional contains positional arguments.
type Positional struct {
	ROM   string `arg:"positional" usage:"CHIP-8 ROM file to run"`
	Scale int    `arg:"positional" usage:"terminal columns per pixel (1-64)" default:"12"`
}

// Parameters contains file path options.
type Parameters struct {
	Config string `flag:"c" usage:"TOML config file"`
}

// Machine contains the options of the emulated machine.
type Machine struct {
	CyclesPerFrame int    `flag:"cycles" usage:"instructions executed per frame" default:"10"`
	TimerHz        int    `flag:"hz" usage:"delay and sound timer rate" default:"60"`
	FrameRate      int    `flag:"fps" usage:"frames per second" default:"60"`
	Seed           uint64 `flag:"seed" usage:"random seed, 0 seeds from the process generator"`
	Strict         bool   `flag:"strict" usage:"stop on unknown opcodes and stack errors"`
	NonBlockingKey bool   `flag:"nonblocking-key" usage:"keep executing while waiting for a key press"`
}

// Flags contains behavior options.
type Flags struct {
	Disasm bool `flag:"disasm" usage:"print a disassembly listing of the ROM instead of running it"`
	Trace  bool `flag:"trace" usage:"log every executed instruction (implies -debug)"`
	Debug  bool `flag:"debug" usage:"enable debug logging"`
	Quiet  bool `flag:"q" usage:"quiet mode"`
}

// Display contains the terminal rendering options.
type Display struct {
	On  string // glyph of a set pixel column
	Off string // glyph of a cleared pixel column
}

// Program options of the emulator.
type Program struct {
	Positional
	Parameters
	Machine
	Flags

	Display Display
	Keymap  map[string]string // physical key to hex key overrides

	// Explicit contains the names of all flags set on the command line.
	Explicit map[string]bool
}

// NewProgram returns program options initialized with the defaults.
func NewProgram() Program {
	return Program{
		Positional: Positional{
			Scale: DefaultScale,
		},
		Machine: Machine{
			CyclesPerFrame: DefaultCyclesPerFrame,
			TimerHz:        DefaultTimerHz,
			FrameRate:      DefaultFrameRate,
		},
		Explicit: map[string]bool{},
	}
}

// ClampScale limits a scale value to the supported range.
func ClampScale(scale int) int {
	return min(max(scale, MinScale), MaxScale)
}
