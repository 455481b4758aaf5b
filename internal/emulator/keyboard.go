package emulator

import (
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
)

// keyHoldTime is how long a key counts as pressed after a key press event of
// a frontend without release events. Terminal auto repeat refreshes it while
// the key is held down.
const keyHoldTime = 200 * time.Millisecond

// keyboard tracks the pressed keys of the hex keypad.
type keyboard struct {
	hold     time.Duration
	state    vm.Keys
	deadline [vm.KeyCount]time.Time
}

func (k *keyboard) press(key uint8, now time.Time) {
	k.state.Set(key, true)
	k.deadline[key&0xF] = now.Add(k.hold)
}

func (k *keyboard) release(key uint8) {
	k.state.Set(key, false)
}

// expire releases all keys whose hold time passed.
func (k *keyboard) expire(now time.Time) {
	for key, down := range k.state {
		if down && !now.Before(k.deadline[key]) {
			k.state[key] = false
		}
	}
}
