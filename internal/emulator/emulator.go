// Package emulator implements the frame loop that drives the CHIP-8 machine:
// it feeds key input, executes a batch of instructions per frame, ticks the
// timers at their wall clock rate and renders the framebuffer on changes.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// ErrInit is wrapped by errors of frontends that fail to initialize.
var ErrInit = errors.New("initialization failed")

// maxTimerLag limits how many timer ticks are caught up after the process
// was suspended.
const maxTimerLag = 250 * time.Millisecond

// Event is an input event of a frontend.
type Event struct {
	Rune     rune // physical key
	Released bool // key release, for frontends that report them
	Quit     bool // user requested to quit
}

// Frontend renders the machine output and provides the user input.
type Frontend interface {
	// Render draws the framebuffer.
	Render(fb *vm.Framebuffer) error
	// Beep signals that the sound timer became active.
	Beep() error
	// Events returns the input events. A closed channel quits the emulator.
	Events() <-chan Event
}

// Emulator drives a machine with a frontend.
type Emulator struct {
	logger   *log.Logger
	machine  *vm.VM
	frontend Frontend
	keymap   *keymap.Map
	opts     options.Machine
	trace    bool

	keys        keyboard
	timerPeriod time.Duration
	lastTick    time.Time
	sound       bool
}

// New returns a new emulator for the given frontend.
func New(logger *log.Logger, frontend Frontend, km *keymap.Map, opts options.Program) *Emulator {
	return &Emulator{
		logger:      logger,
		machine:     vm.New(machineOptions(opts.Machine)...),
		frontend:    frontend,
		keymap:      km,
		opts:        opts.Machine,
		trace:       opts.Trace,
		keys:        keyboard{hold: keyHoldTime},
		timerPeriod: time.Second / time.Duration(max(opts.TimerHz, 1)),
	}
}

func machineOptions(opts options.Machine) []vm.Option {
	var vmOpts []vm.Option
	if opts.Seed != 0 {
		vmOpts = append(vmOpts, vm.WithRandom(vm.NewSeededSource(opts.Seed)))
	}
	if opts.Strict {
		vmOpts = append(vmOpts, vm.WithStrict())
	}
	if opts.NonBlockingKey {
		vmOpts = append(vmOpts, vm.WithNonBlockingKeyWait())
	}
	return vmOpts
}

// Machine returns the emulated machine.
func (e *Emulator) Machine() *vm.VM {
	return e.machine
}

// Load loads the ROM into the machine.
func (e *Emulator) Load(rom []byte) error {
	if err := e.machine.Load(rom); err != nil {
		return fmt.Errorf("%w: %w", loader.ErrRomLoad, err)
	}

	e.logger.Debug("ROM loaded",
		log.Int("size", len(rom)),
		log.Hex("address", uint16(vm.ProgramStart)),
	)
	return nil
}

// Run executes frames at the configured frame rate until the user quits, the
// context is canceled or the machine fails in strict mode.
func (e *Emulator) Run(ctx context.Context) error {
	frameRate := max(e.opts.FrameRate, 1)
	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()

	e.logger.Debug("Starting emulation",
		log.Int("cycles_per_frame", e.opts.CyclesPerFrame),
		log.Int("timer_hz", e.opts.TimerHz),
		log.Int("frame_rate", frameRate),
	)

	if err := e.frontend.Render(e.machine.Framebuffer()); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	e.lastTick = time.Now()

	for {
		select {
		case <-ctx.Done():
			e.logState()
			return fmt.Errorf("running emulation: %w", ctx.Err())

		case now := <-ticker.C:
			quit, err := e.frame(now)
			if err != nil {
				e.logState()
				return err
			}
			if quit {
				e.logState()
				return nil
			}
		}
	}
}

// frame processes the pending input, executes one batch of instructions,
// ticks the timers for the time passed and renders if needed. It returns
// true if the user quit.
func (e *Emulator) frame(now time.Time) (bool, error) {
	if quit := e.processEvents(now); quit {
		return true, nil
	}
	e.keys.expire(now)

	redraw, err := e.runCycles()
	if err != nil {
		return false, err
	}

	if err := e.tickTimers(now); err != nil {
		return false, err
	}

	if redraw {
		if err := e.frontend.Render(e.machine.Framebuffer()); err != nil {
			return false, fmt.Errorf("rendering: %w", err)
		}
	}
	return false, nil
}

func (e *Emulator) processEvents(now time.Time) bool {
	events := e.frontend.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok || ev.Quit {
				return true
			}
			e.handleKey(ev, now)

		default:
			return false
		}
	}
}

func (e *Emulator) handleKey(ev Event, now time.Time) {
	key, ok := e.keymap.Lookup(ev.Rune)
	if !ok {
		return
	}

	if ev.Released {
		e.keys.release(key)
		return
	}

	e.keys.press(key, now)
	if e.machine.AwaitingKey() {
		e.logger.Debug("Key wait resolved", log.Uint8("key", key))
	}
	e.machine.FeedKey(key)
}

func (e *Emulator) runCycles() (bool, error) {
	redraw := false

	for range e.opts.CyclesPerFrame {
		res, err := e.machine.Step(e.keys.state)
		if err != nil {
			return redraw, fmt.Errorf("executing instruction: %w", err)
		}
		if res.Halted {
			break
		}

		if e.trace {
			e.logger.Debug("Executed",
				log.Hex("pc", res.Address),
				log.Hex("opcode", res.Instruction.Opcode),
				log.String("instruction", res.Instruction.String()),
			)
		}
		redraw = redraw || res.Redraw
	}

	return redraw, nil
}

func (e *Emulator) tickTimers(now time.Time) error {
	if now.Sub(e.lastTick) > maxTimerLag {
		e.lastTick = now.Add(-e.timerPeriod)
	}

	for now.Sub(e.lastTick) >= e.timerPeriod {
		e.lastTick = e.lastTick.Add(e.timerPeriod)
		active := e.machine.Tick()

		if active && !e.sound {
			e.logger.Debug("Sound on")
			if err := e.frontend.Beep(); err != nil {
				return fmt.Errorf("beeping: %w", err)
			}
		}
		e.sound = active
	}
	return nil
}

func (e *Emulator) logState() {
	state := e.machine.State()
	e.logger.Debug("Machine state",
		log.Hex("pc", state.PC),
		log.Hex("i", state.I),
		log.Uint8("sp", state.SP),
		log.Uint8("dt", state.DT),
		log.Uint8("st", state.ST),
	)
}
