package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Debounce the gun trigger input and fire the transmitter
 *		on a confirmed press.
 *
 * Description:	Ported from trigger.c's currentState_trig state machine.
 *		Gun-disconnect detection (trigger read active at Init time)
 *		is preserved from the original: a badge whose gun jack is
 *		unplugged floats its sense pin active, so Init treats that
 *		as "no gun attached" and permanently ignores it rather than
 *		latching a phantom held trigger.
 *
 *------------------------------------------------------------------*/

type triggerState int

const (
	trigInit triggerState = iota
	trigNotPressed
	trigDebouncePress
	trigPressed
	trigDebounceRelease
)

// Trigger debounces the gun input and drives the transmitter. It is
// ISR-owned, ticked once per 100 kHz interrupt.
type Trigger struct {
	pin         Pin
	transmitter *Transmitter

	state   triggerState
	enabled bool

	shotFired      bool
	ignoreGunInput bool
	shotsRemaining int
	counter        int
}

// NewTrigger wires the debouncer to its input pin and the transmitter
// it fires.
func NewTrigger(pin Pin, transmitter *Transmitter) *Trigger {
	return &Trigger{pin: pin, transmitter: transmitter}
}

// triggerPressed reports the gun's logical pressed state, matching
// triggerPressed(): always false once ignoreGunInput latches.
func (t *Trigger) triggerPressed() bool {
	return !t.ignoreGunInput && t.pin.ReadActive()
}

// Init resets the debouncer to init_st with a full shot count. If the
// input reads active right now, the gun is assumed disconnected and
// is ignored for the life of the Trigger. Matches trigger_init.
func (t *Trigger) Init() {
	t.state = trigInit
	t.shotsRemaining = StartingShots
	t.counter = 0
	t.shotFired = false
	if t.pin.ReadActive() {
		t.ignoreGunInput = true
	}
}

// Enable allows the state machine to run. Matches trigger_enable.
func (t *Trigger) Enable() {
	t.enabled = true
}

// Disable forces the state machine back to init_st on the next Tick
// and ignores trigger input until re-enabled. Matches trigger_disable.
func (t *Trigger) Disable() {
	t.enabled = false
}

// RemainingShots returns the shot counter. Matches
// trigger_getRemainingShotCount.
func (t *Trigger) RemainingShots() int {
	return t.shotsRemaining
}

// SetRemainingShots sets the shot counter. Matches
// trigger_setRemainingShotCount.
func (t *Trigger) SetRemainingShots(count int) {
	t.shotsRemaining = count
}

// ShotsFired reports whether a shot is in progress: true from the
// confirmed press until the release is confirmed, so it stays true
// through the release debounce. Matches trigger_shotsFired.
func (t *Trigger) ShotsFired() bool {
	return t.shotFired
}

// Tick advances the debouncer by one 100 kHz tick. Matches
// trigger_tick.
func (t *Trigger) Tick() {
	if !t.enabled {
		t.state = trigInit
	}

	switch t.state {
	case trigInit:
		t.shotFired = false
		if t.enabled {
			t.state = trigNotPressed
		}

	case trigNotPressed:
		if t.triggerPressed() && t.shotsRemaining > 0 {
			t.counter = 0
			t.state = trigDebouncePress
		}

	case trigDebouncePress:
		if !t.triggerPressed() {
			t.state = trigNotPressed
		} else if t.counter > DebounceTicks {
			t.state = trigPressed
			t.shotFired = true
			t.transmitter.Run()
		}

	case trigPressed:
		if !t.triggerPressed() {
			t.state = trigDebounceRelease
			t.counter = 0
		}

	case trigDebounceRelease:
		if t.triggerPressed() {
			t.state = trigPressed
		} else if t.counter > DebounceTicks {
			t.state = trigNotPressed
			t.shotFired = false
			t.shotsRemaining--
		}
	}

	switch t.state {
	case trigInit:
		t.counter = 0
	case trigNotPressed:
	case trigDebouncePress:
		t.counter++
	case trigPressed:
	case trigDebounceRelease:
		t.counter++
	}
}
