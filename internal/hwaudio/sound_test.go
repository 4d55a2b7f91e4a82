package hwaudio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// These tests exercise fill() directly - the pure DSP logic behind
// the PortAudio callback - without opening a real audio device.

func TestToneSound_Fill_SilentWhenInactive(t *testing.T) {
	ts := &ToneSound{step: 2 * math.Pi * 440 / sampleRateHz}

	out := make([]float32, 64)
	ts.fill(out)

	for _, v := range out {
		assert.Equal(t, float32(0), v)
	}
}

func TestToneSound_Fill_ProducesBoundedSineWhenActive(t *testing.T) {
	ts := &ToneSound{step: 2 * math.Pi * 440 / sampleRateHz}
	ts.SetActive(true)

	out := make([]float32, 256)
	ts.fill(out)

	var nonZero bool
	for _, v := range out {
		assert.LessOrEqual(t, float64(v), 0.3)
		assert.GreaterOrEqual(t, float64(v), -0.3)
		if v != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero, "an active tone should not be silent")
}

func TestToneSound_SetActive_TogglesImmediately(t *testing.T) {
	ts := &ToneSound{step: 2 * math.Pi * 440 / sampleRateHz}

	ts.SetActive(true)
	out := make([]float32, 8)
	ts.fill(out)
	// out[0] is sin(0) == 0 by construction; the tone is audible from out[1].
	assert.NotEqual(t, float32(0), out[1])

	ts.SetActive(false)
	out2 := make([]float32, 8)
	ts.fill(out2)
	assert.Equal(t, float32(0), out2[0])
}
