package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Aggregate every state machine and expose the two
 *		entry points a badge's runtime actually calls: one from
 *		the 100 kHz timer interrupt, one from the cooperative
 *		foreground loop.
 *
 * Description:	Ported from isr.c's isr_init/isr_function. The ISR
 *		dispatch order below - lockout, hit-LED, trigger,
 *		transmitter, sound, then one ADC push - matches
 *		isr_function() exactly.
 *
 *------------------------------------------------------------------*/

// Core owns every component of one badge: the timers, trigger,
// transmitter, ADC ring buffer and detector, plus whatever Sound is
// wired in. Split into Tick (ISR-facing) and Run/foreground accessors
// (cooperative-loop-facing).
type Core struct {
	ring        *AdcRingBuffer
	lockout     *LockoutTimer
	hitLed      *HitLedTimer
	trigger     *Trigger
	transmitter *Transmitter
	detector    *Detector
	sound       Sound
	adc         ADC
}

// NewCore wires a complete badge. sound may be NullSound{} if the
// badge has no audio hardware.
func NewCore(adc ADC, transmitterPin, hitLedPin, triggerPin Pin, sound Sound) *Core {
	ring := &AdcRingBuffer{}
	lockout := &LockoutTimer{}
	hitLed := NewHitLedTimer(hitLedPin)
	transmitter := NewTransmitter(transmitterPin)
	trigger := NewTrigger(triggerPin, transmitter)
	detector := NewDetector(ring, lockout, hitLed)

	return &Core{
		ring:        ring,
		lockout:     lockout,
		hitLed:      hitLed,
		trigger:     trigger,
		transmitter: transmitter,
		detector:    detector,
		sound:       sound,
		adc:         adc,
	}
}

// Init (re)initializes every component. Matches isr_init plus
// detector_init, run once before the ISR starts firing.
func (c *Core) Init(ignoreMask [NumChannels]bool) {
	c.ring.Init()
	c.lockout.Init()
	c.hitLed.Init()
	c.hitLed.Enable()
	c.trigger.Init()
	c.transmitter.Init()
	c.detector.Init(ignoreMask)
}

// Tick runs one 100 kHz interrupt cycle. Matches isr_function's
// dispatch order exactly: lockout, hit-LED, trigger, transmitter,
// sound, then a single ADC sample push.
func (c *Core) Tick() {
	c.lockout.Tick()
	c.hitLed.Tick()
	c.trigger.Tick()
	c.transmitter.Tick()
	c.sound.Tick()
	c.ring.Push(c.adc.Read())
}

// RunForeground drains the ADC ring buffer and advances the filter
// bank and hit-decision rule. Matches the foreground side of
// detector() as called from the game-mode main loop; interrupts are
// never actually masked on the Go side (AdcRingBuffer.Pop is always
// safe to call), so interruptsCurrentlyEnabled only preserves the
// original signature.
func (c *Core) RunForeground(interruptsCurrentlyEnabled bool) {
	c.detector.Run(interruptsCurrentlyEnabled)
}

// Trigger, Transmitter, Detector, Lockout, and HitLed expose the
// wired components for foreground code that needs to configure or
// query them (frequency selection, ignore masks, shot counts, hit
// state) without reaching into Core's internals.
func (c *Core) Trigger() *Trigger         { return c.trigger }
func (c *Core) Transmitter() *Transmitter { return c.transmitter }
func (c *Core) Detector() *Detector       { return c.detector }
func (c *Core) Lockout() *LockoutTimer    { return c.lockout }
func (c *Core) HitLed() *HitLedTimer      { return c.hitLed }
