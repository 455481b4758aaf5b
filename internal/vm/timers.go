package vm

// timers holds the delay and sound timer. Both count down to zero at the
// rate the driver calls tick.
type timers struct {
	delay uint8
	sound uint8
}

func (t *timers) tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Tick decrements the delay and sound timers if they are not zero. It is
// meant to be called at 60 Hz independent of the instruction rate and
// returns whether the sound timer is still active afterwards.
func (v *VM) Tick() bool {
	v.timers.tick()
	return v.SoundActive()
}

// SoundActive returns whether the sound timer is non-zero, in which case the
// driver should produce a tone.
func (v *VM) SoundActive() bool {
	return v.timers.sound > 0
}
