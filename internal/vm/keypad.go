package vm

// Keys is the live state of the hex keypad, indexed by key value 0x0-0xF.
type Keys [KeyCount]bool

// Down returns whether the key is pressed. Only the low nibble of key is used.
func (k *Keys) Down(key uint8) bool {
	return k[key&0xF]
}

// Set updates the pressed state of a key. Only the low nibble of key is used.
func (k *Keys) Set(key uint8, down bool) {
	k[key&0xF] = down
}

// inputLatch records a pending Fx0A key wait.
type inputLatch struct {
	awaiting bool
	target   uint8
}

// FeedKey reports a key press to the machine. If a key wait instruction is
// pending, the key is written to its target register and the wait ends.
// Otherwise the call has no effect.
func (v *VM) FeedKey(key uint8) {
	if !v.latch.awaiting {
		return
	}
	v.v[v.latch.target] = key & 0xF
	v.latch = inputLatch{}
}

// AwaitingKey returns whether a key wait instruction is pending.
func (v *VM) AwaitingKey() bool {
	return v.latch.awaiting
}
