package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Square-wave generator state machine at one of ten
 *		frequencies, with a 200 ms pulse or continuous mode.
 *
 * Description:	Ported from transmitter.c's currentState_trans state
 *		machine. Split into update and action phases per tick, so a
 *		transition and its entry action land in the same tick.
 *
 *------------------------------------------------------------------*/

import "sync/atomic"

type transmitterState int

const (
	txInit transmitterState = iota
	txOff
	txHigh
	txLow
)

// Transmitter is the ISR-owned square-wave state machine. It drives a
// single output Pin at the half-period implied by its current
// frequency index.
type Transmitter struct {
	pin Pin

	state transmitterState

	halfPeriodCounter int
	elapsed           int
	frequencyIndex    int32 // atomic: read by foreground via FrequencyIndex

	startRequested atomic.Bool
	continuousMode atomic.Bool
}

// NewTransmitter wires the transmitter to its output pin.
func NewTransmitter(pin Pin) *Transmitter {
	return &Transmitter{pin: pin}
}

// Init resets the state machine to init_st. The pin is driven low on
// the next Tick, when the machine leaves init_st. Matches
// transmitter_init.
func (t *Transmitter) Init() {
	t.state = txInit
	t.halfPeriodCounter = 0
	t.elapsed = 0
	t.startRequested.Store(false)
	t.continuousMode.Store(false)
	atomic.StoreInt32(&t.frequencyIndex, 0)
}

// Run requests a pulse start. Matches transmitter_run. Safe to call
// from the foreground while the ISR advances Tick concurrently.
func (t *Transmitter) Run() {
	t.startRequested.Store(true)
}

// Running reports whether the transmitter is mid-pulse or a start is
// pending. Matches transmitter_running.
func (t *Transmitter) Running() bool {
	return t.state == txHigh || t.state == txLow || t.startRequested.Load()
}

// SetContinuousMode toggles continuous pulsing. In continuous mode the
// frequency index may be updated live; otherwise a mid-pulse update is
// discarded and the index in use stays latched until the pulse ends.
func (t *Transmitter) SetContinuousMode(continuous bool) {
	t.continuousMode.Store(continuous)
}

// SetFrequencyIndex requests frequency index k. Matches
// transmitter_setFrequencyNumber: the update takes effect immediately
// only in continuous mode, or while off/uninitialized; otherwise it is
// silently discarded and the current index stays latched until the
// pulse ends (a later call is needed to change it). Out-of-range
// indices are clamped into [0, NumChannels).
func (t *Transmitter) SetFrequencyIndex(k int) {
	if k < 0 {
		k = 0
	}
	if k >= NumChannels {
		k = NumChannels - 1
	}
	if t.continuousMode.Load() || t.state == txInit || t.state == txOff {
		atomic.StoreInt32(&t.frequencyIndex, int32(k))
	}
}

// FrequencyIndex returns the currently latched frequency index.
func (t *Transmitter) FrequencyIndex() int {
	return int(atomic.LoadInt32(&t.frequencyIndex))
}

// Tick advances the state machine by one 100 kHz tick. Called from
// the ISR dispatcher.
func (t *Transmitter) Tick() {
	switch t.state {
	case txInit:
		t.state = txOff
		t.pin.Write(false)

	case txOff:
		if t.startRequested.Load() {
			t.state = txHigh
			t.startRequested.Store(false)
			t.halfPeriodCounter = 0
			t.elapsed = 0
			t.pin.Write(true)
			logger.Info("pulse started", "frequencyIndex", t.FrequencyIndex(), "continuous", t.continuousMode.Load())
		}

	case txHigh:
		if t.elapsed > TransmitterPulseTicks && !t.continuousMode.Load() {
			t.state = txOff
			t.pin.Write(false)
		} else if t.halfPeriodCounter >= t.halfPeriod() {
			t.halfPeriodCounter = 0
			t.state = txLow
			t.pin.Write(false)
		}

	case txLow:
		if t.elapsed > TransmitterPulseTicks && !t.continuousMode.Load() {
			t.state = txOff
		} else if t.halfPeriodCounter >= t.halfPeriod() {
			t.halfPeriodCounter = 0
			t.state = txHigh
			t.pin.Write(true)
		}
	}

	switch t.state {
	case txHigh, txLow:
		t.halfPeriodCounter++
		t.elapsed++
	}
}

// halfPeriod returns the number of ticks for half a cycle at the
// current frequency index.
func (t *Transmitter) halfPeriod() int {
	return frequencyTickTable[t.FrequencyIndex()] / 2
}
