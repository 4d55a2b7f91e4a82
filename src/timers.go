package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Lockout and hit-LED monostables.
 *
 * Description:	Ported from lockoutTimer.c and hitLedTimer.c. Both are
 *		ISR-owned, ticked once per 100 kHz interrupt, and expose a
 *		race-tolerant Running() accessor the foreground reads freely.
 *
 *------------------------------------------------------------------*/

import "sync/atomic"

type lockoutState int

const (
	lockoutInit lockoutState = iota
	lockoutRunning
)

// LockoutTimer suppresses re-detection for LockoutTicks after a hit.
// Matches lockoutTimer.c.
type LockoutTimer struct {
	state   atomic.Int32
	counter int
}

// Init resets the timer to its idle state. Matches lockoutTimer_init.
func (lt *LockoutTimer) Init() {
	lt.state.Store(int32(lockoutInit))
	lt.counter = 0
}

// Start begins the 0.5 s lockout interval. Matches lockoutTimer_start.
func (lt *LockoutTimer) Start() {
	lt.counter = 0
	lt.state.Store(int32(lockoutRunning))
}

// Running reports whether the lockout interval is in progress.
// Matches lockoutTimer_running; safe to call from the foreground while
// the ISR ticks concurrently.
func (lt *LockoutTimer) Running() bool {
	return lockoutState(lt.state.Load()) == lockoutRunning
}

// Tick advances the timer by one 100 kHz tick. Matches
// lockoutTimer_tick: the expiry check runs against the counter value
// carried in from the previous tick, then the counter advances, so a
// Start() held for exactly LockoutTicks ticks reports Running() true
// for ticks 1..LockoutTicks and false from tick LockoutTicks+1 on.
func (lt *LockoutTimer) Tick() {
	if lockoutState(lt.state.Load()) == lockoutRunning && lt.counter >= LockoutTicks {
		lt.state.Store(int32(lockoutInit))
	}
	if lockoutState(lt.state.Load()) == lockoutRunning {
		lt.counter++
	}
}

type hitLedState int

const (
	hitLedInit hitLedState = iota
	hitLedRunning
	hitLedDisabled
)

// HitLedTimer drives the hit-indication output for HitLedTicks after a
// hit, and can be disabled entirely (e.g. between rounds). Matches
// hitLedTimer.c.
type HitLedTimer struct {
	pin Pin

	state   atomic.Int32
	counter int
	enabled atomic.Bool
}

// NewHitLedTimer wires the timer to its indicator output pin.
func NewHitLedTimer(pin Pin) *HitLedTimer {
	return &HitLedTimer{pin: pin}
}

// Init resets the timer to its idle state and drives the indicator
// low. Matches hitLedTimer_init (enable state is independent, matching
// the original's separate enabled flag).
func (ht *HitLedTimer) Init() {
	ht.state.Store(int32(hitLedInit))
	ht.counter = 0
	ht.pin.Write(false)
}

// Enable allows the timer to run. Matches hitLedTimer_enable.
func (ht *HitLedTimer) Enable() {
	ht.enabled.Store(true)
}

// Disable forces the timer into the disabled state until re-enabled.
// Matches hitLedTimer_disable.
func (ht *HitLedTimer) Disable() {
	ht.enabled.Store(false)
	ht.state.Store(int32(hitLedDisabled))
}

// Start begins the 0.5 s indicator interval, if enabled. Matches
// hitLedTimer_start.
func (ht *HitLedTimer) Start() {
	if ht.enabled.Load() {
		ht.counter = 0
		ht.state.Store(int32(hitLedRunning))
	}
}

// Running reports whether the indicator interval is in progress.
// Matches hitLedTimer_running.
func (ht *HitLedTimer) Running() bool {
	return hitLedState(ht.state.Load()) == hitLedRunning
}

// Tick advances the timer by one 100 kHz tick. Matches
// hitLedTimer_tick: the expiry check uses the counter value carried in
// from the previous tick, so a Start() held for exactly HitLedTicks
// ticks drives the pin high for ticks 1..HitLedTicks and low from tick
// HitLedTicks+1 on, matching LockoutTimer's tick accounting.
func (ht *HitLedTimer) Tick() {
	switch hitLedState(ht.state.Load()) {
	case hitLedInit:
		// no-op
	case hitLedRunning:
		if ht.counter >= HitLedTicks {
			ht.state.Store(int32(hitLedInit))
		}
	case hitLedDisabled:
		if ht.enabled.Load() {
			ht.state.Store(int32(hitLedInit))
		}
	}

	switch hitLedState(ht.state.Load()) {
	case hitLedInit:
		ht.pin.Write(false)
	case hitLedRunning:
		ht.pin.Write(true)
		ht.counter++
	case hitLedDisabled:
		ht.pin.Write(false)
	}
}
