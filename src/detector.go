package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Consume samples, run the filter bank, apply the hit
 *		decision rule, record hits.
 *
 *------------------------------------------------------------------*/

// Detector runs the decimating filter bank and the hit-decision rule.
// It owns the ring buffer pop loop, the filter bank, and every piece
// of per-player detection state. It is foreground-owned.
type Detector struct {
	ring   *AdcRingBuffer
	filter *FilterBank

	ignoreFreq [NumChannels]bool
	ignoreSelf bool
	ignoreAll  bool

	myFrequency int

	fudgeFactor uint32

	invocationCount int
	forcePower      bool
	epochsSinceSync int

	hitDetected bool
	lastHit     int
	hitCount    [NumChannels]uint32

	testMode  bool
	testPower [NumChannels]float64

	lockout *LockoutTimer
	hitLed  *HitLedTimer
}

// NewDetector wires a detector to the ring buffer it drains and the
// timers it reads as gates. myFrequency is set separately through
// SetMyFrequency.
func NewDetector(ring *AdcRingBuffer, lockout *LockoutTimer, hitLed *HitLedTimer) *Detector {
	return &Detector{
		ring:        ring,
		lockout:     lockout,
		hitLed:      hitLed,
		fudgeFactor: DefaultFudgeFactor,
	}
}

// Init (re)initializes detector and filter-bank state with the given
// per-channel ignore mask: ignoreSelf defaults true, the hit flag and
// hit counts are cleared, and forced power recomputation is armed for
// the first FIR epoch.
func (d *Detector) Init(ignoreMask [NumChannels]bool) {
	d.filter = NewFilterBank()
	d.ignoreFreq = ignoreMask
	d.hitCount = [NumChannels]uint32{}
	d.invocationCount = 0
	d.forcePower = true
	d.epochsSinceSync = 0
	d.hitDetected = false
	d.fudgeFactor = DefaultFudgeFactor
	d.ignoreSelf = true
}

// SetMyFrequency records the channel this badge transmits on, so
// self-hits can be ignored per ignoreSelf.
func (d *Detector) SetMyFrequency(ch int) {
	Assert(ch >= 0 && ch < NumChannels)
	d.myFrequency = ch
}

// SetIgnoreSelf toggles whether a hit on myFrequency is suppressed.
func (d *Detector) SetIgnoreSelf(ignore bool) {
	d.ignoreSelf = ignore
}

// IgnoreAllHits enables or disables the blanket hit-ignore flag, used
// by game modes for limited invincibility.
func (d *Detector) IgnoreAllHits(flag bool) {
	d.ignoreAll = flag
}

// SetFudgeFactor adjusts the threshold multiplier applied to the 5th-
// largest channel power. This is a direct multiplier, not an index
// into a table.
func (d *Detector) SetFudgeFactor(factor uint32) {
	d.fudgeFactor = factor
}

// FudgeFactor returns the current threshold multiplier.
func (d *Detector) FudgeFactor() uint32 {
	return d.fudgeFactor
}

// ForceRecompute arms a forced, non-incremental power recomputation on
// the next epoch for every channel, discarding the running
// incremental sum-of-squares. Exposed so a caller that suspects the
// incremental estimate has drifted from the true windowed power (for
// example after a detected anomaly, or periodically as a sanity check)
// can request a fresh baseline without waiting for the window to
// naturally refill.
func (d *Detector) ForceRecompute() {
	logger.Warn("forced power recompute requested")
	d.forcePower = true
}

// SetTestPowers injects fixed per-channel power values in place of the
// filter bank's output, and enables test mode.
func (d *Detector) SetTestPowers(powers [NumChannels]float64) {
	d.testMode = true
	d.testPower = powers
}

// ClearTestMode disables test-power injection, returning to the
// filter bank's real output.
func (d *Detector) ClearTestMode() {
	d.testMode = false
}

// scaleAdcSample maps a raw 12-bit ADC reading to [-1, +1]: 0 maps
// to -1 and 4095 to +1.
func scaleAdcSample(raw uint16) float64 {
	const adcMax = 4095.0
	return 2*(float64(raw)/adcMax) - 1
}

// Run drains the ring buffer and advances the filter bank and decision
// rule. interruptsCurrentlyEnabled is accepted for interface symmetry
// with the ISR-facing half of the core; AdcRingBuffer.Pop is always
// safe to call from foreground code regardless of its value.
func (d *Detector) Run(interruptsCurrentlyEnabled bool) {
	_ = interruptsCurrentlyEnabled // ring buffer pop is always safe; flag kept for interface fidelity.

	count := d.ring.Count()
	for i := 0; i < count; i++ {
		raw := d.ring.Pop()
		scaled := scaleAdcSample(raw)

		d.invocationCount++
		d.filter.AddInput(scaled)

		if d.invocationCount == FirDecimationFactor {
			d.invocationCount = 0
			d.runEpoch()
		}
	}
}

// runEpoch runs one FIR/IIR/power/decision cycle - everything that
// happens once per FirDecimationFactor raw samples.
func (d *Detector) runEpoch() {
	d.filter.RunFIR()
	for k := 0; k < NumChannels; k++ {
		d.filter.RunIIR(k)
	}

	if !d.forcePower {
		d.epochsSinceSync++
		if d.epochsSinceSync >= DriftRecomputeEpochs {
			logger.Warn("forced power recompute triggered by drift", "epochs", d.epochsSinceSync)
			d.forcePower = true
		}
	}

	for k := 0; k < NumChannels; k++ {
		d.filter.ComputePower(k, d.forcePower)
	}
	if d.forcePower {
		d.epochsSinceSync = 0
	}
	d.forcePower = false

	logger.Debug("epoch processed", "powers", d.filter.CurrentPowers())

	if d.lockout.Running() || d.hitLed.Running() || d.hitDetected {
		return
	}

	var powers [NumChannels]float64
	if d.testMode {
		powers = d.testPower
	} else {
		powers = d.filter.CurrentPowers()
	}

	idx := descendingPowerOrder(powers)
	const medianElement = 4
	median := powers[idx[medianElement]]
	threshold := median * float64(d.fudgeFactor)

	winner := idx[0]
	max := powers[winner]

	if max > threshold &&
		!d.ignoreFreq[winner] &&
		!d.ignoreAll &&
		!(winner == d.myFrequency && d.ignoreSelf) {
		d.lastHit = winner
		d.lockout.Start()
		d.hitLed.Start()
		d.hitCount[winner]++
		d.hitDetected = true
		logger.Info("hit detected", "channel", winner, "power", max, "threshold", threshold)
	}
}

// descendingPowerOrder returns a stable permutation of [0, NumChannels)
// sorted by descending power, ties broken by lower original index
// first. Insertion sort is the simplest stable sort at n = 10 and
// keeps the loop index signed throughout, so it can never underflow.
func descendingPowerOrder(power [NumChannels]float64) [NumChannels]int {
	var idx [NumChannels]int
	for i := range idx {
		idx[i] = i
	}

	for i := 1; i < NumChannels; i++ {
		cur := idx[i]
		j := i - 1
		for j >= 0 && power[idx[j]] < power[cur] {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = cur
	}
	return idx
}

// HitDetected reports whether a hit is currently latched.
func (d *Detector) HitDetected() bool {
	return d.hitDetected
}

// LastHitChannel returns the channel of the most recent hit.
func (d *Detector) LastHitChannel() int {
	return d.lastHit
}

// ClearHit clears the latched hit flag. Called by foreground code once
// the game-mode loop has observed it.
func (d *Detector) ClearHit() {
	d.hitDetected = false
}

// HitCounts copies the per-channel hit counters.
func (d *Detector) HitCounts() [NumChannels]uint32 {
	return d.hitCount
}
