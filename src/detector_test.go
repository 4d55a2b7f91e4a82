package lasertag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector(t *testing.T) (*Detector, *LockoutTimer, *HitLedTimer) {
	t.Helper()
	ring := &AdcRingBuffer{}
	ring.Init()
	lockout := &LockoutTimer{}
	lockout.Init()
	hitLed := NewHitLedTimer(NewMemPin(false))
	hitLed.Init()
	hitLed.Enable()

	d := NewDetector(ring, lockout, hitLed)
	d.Init([NumChannels]bool{})
	return d, lockout, hitLed
}

func TestDetector_HitCase(t *testing.T) {
	d, _, _ := newTestDetector(t)
	d.SetFudgeFactor(20)
	d.SetIgnoreSelf(false)
	d.SetTestPowers([NumChannels]float64{25, 17, 0, 18, 34, 23, 57, 11, 4600, 40})

	d.runEpoch()

	assert.True(t, d.HitDetected())
	assert.Equal(t, 8, d.LastHitChannel())
	assert.Equal(t, uint32(1), d.HitCounts()[8])
}

func TestDetector_NoHitCase(t *testing.T) {
	d, _, _ := newTestDetector(t)
	d.SetFudgeFactor(20)
	d.SetTestPowers([NumChannels]float64{25, 17, 0, 16, 34, 23, 57, 11, 46, 40})

	d.runEpoch()

	assert.False(t, d.HitDetected())
}

func TestDetector_LockoutSuppression(t *testing.T) {
	d, lockout, _ := newTestDetector(t)
	d.SetFudgeFactor(20)
	d.SetIgnoreSelf(false)
	hitVector := [NumChannels]float64{25, 17, 0, 18, 34, 23, 57, 11, 4600, 40}
	d.SetTestPowers(hitVector)

	lockout.Start()
	require.True(t, lockout.Running())

	d.runEpoch()
	assert.False(t, d.HitDetected(), "a running lockout must suppress the hit")

	for i := 0; i < LockoutTicks+1; i++ {
		lockout.Tick()
	}
	require.False(t, lockout.Running())

	d.runEpoch()
	assert.True(t, d.HitDetected(), "once lockout expires, the same input should score a hit")
	assert.Equal(t, uint32(1), d.HitCounts()[8])
}

func TestDetector_SelfIgnore(t *testing.T) {
	d, _, _ := newTestDetector(t)
	d.SetFudgeFactor(20)
	d.SetMyFrequency(8)
	d.SetIgnoreSelf(true)
	d.SetTestPowers([NumChannels]float64{25, 17, 0, 18, 34, 23, 57, 11, 4600, 40})

	d.runEpoch()

	assert.False(t, d.HitDetected())
}

func TestDetector_EqualMaxAndThreshold_NoHit(t *testing.T) {
	d, _, _ := newTestDetector(t)
	d.SetFudgeFactor(2)
	d.SetIgnoreSelf(false) // winner is channel 0 == myFrequency; keep self-ignore out of the way
	// median (5th-largest, index 4 after descending sort) is 10; max must
	// exceed median*factor=20 strictly, so max==20 must not fire.
	d.SetTestPowers([NumChannels]float64{20, 15, 14, 13, 10, 9, 8, 7, 6, 5})

	d.runEpoch()

	assert.False(t, d.HitDetected(), "max == threshold must not fire (strict greater-than)")
}

func TestDetector_TiesBreakToLowestIndex(t *testing.T) {
	powers := [NumChannels]float64{50, 50, 1, 1, 1, 1, 1, 1, 1, 1}
	idx := descendingPowerOrder(powers)
	assert.Equal(t, 0, idx[0], "lowest index among tied maxima wins")
	assert.Equal(t, 1, idx[1])
}

func TestDetector_ClearHit_Idempotent(t *testing.T) {
	d, _, _ := newTestDetector(t)
	d.SetFudgeFactor(20)
	d.SetIgnoreSelf(false)
	d.SetTestPowers([NumChannels]float64{25, 17, 0, 18, 34, 23, 57, 11, 4600, 40})
	d.runEpoch()
	require.True(t, d.HitDetected())

	d.ClearHit()
	assert.False(t, d.HitDetected())
}

func TestDetector_AllIgnored_NoHits(t *testing.T) {
	d, _, _ := newTestDetector(t)
	var allIgnored [NumChannels]bool
	for i := range allIgnored {
		allIgnored[i] = true
	}
	d.Init(allIgnored)
	d.SetFudgeFactor(20)
	d.SetTestPowers([NumChannels]float64{25, 17, 0, 18, 34, 23, 57, 11, 4600, 40})

	d.runEpoch()

	assert.False(t, d.HitDetected())
	for _, c := range d.HitCounts() {
		assert.Zero(t, c)
	}
}

func TestDetector_SetFudgeFactor_RoundTrips(t *testing.T) {
	d, _, _ := newTestDetector(t)
	d.SetFudgeFactor(42)
	assert.Equal(t, uint32(42), d.FudgeFactor())
}

func TestDetector_ForceRecompute_ArmsNextEpoch(t *testing.T) {
	d, _, _ := newTestDetector(t)
	d.runEpoch() // consume Init's initial forced epoch
	assert.False(t, d.forcePower)

	d.ForceRecompute()
	assert.True(t, d.forcePower)

	d.runEpoch()
	assert.False(t, d.forcePower, "forcePower is one-shot: cleared after the epoch it armed")
}

func TestDetector_DriftRecompute_FiresAfterConfiguredEpochs(t *testing.T) {
	d, _, _ := newTestDetector(t)
	d.runEpoch() // consume Init's initial forced epoch; starts the drift counter
	require.False(t, d.forcePower)

	d.epochsSinceSync = DriftRecomputeEpochs - 1
	d.runEpoch()

	assert.Equal(t, 0, d.epochsSinceSync, "drift counter resets once a forced recompute fires")
	assert.False(t, d.forcePower, "forcePower is one-shot: cleared after the epoch it armed")
}
