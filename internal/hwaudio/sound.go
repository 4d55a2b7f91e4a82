// Package hwaudio implements lasertag.Sound with an audible tone
// played through the host's sound card, for badges with a speaker
// instead of (or in addition to) the hit-LED.
package hwaudio

/*------------------------------------------------------------------
 *
 * Purpose:	Sound implementation backed by PortAudio.
 *
 * Description:	Generates a single fixed-frequency sine tone on the
 *		default output device, gated on and off by SetActive. Wired
 *		to the badge's hit indicator as an audible alternative to the
 *		hit LED.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

const sampleRateHz = 44100

// ToneSound plays a continuous sine tone out the default output
// device whenever Active is set true, and silence otherwise. The
// frequency is fixed at construction; badges typically use one tone
// for "hit" and rely on the LED for everything else.
type ToneSound struct {
	stream *portaudio.Stream
	phase  float64
	step   float64
	active atomic.Bool
}

// NewToneSound opens the default output device and starts a stream
// generating freqHz, initially silent.
func NewToneSound(freqHz float64) (*ToneSound, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	ts := &ToneSound{step: 2 * math.Pi * freqHz / sampleRateHz}

	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRateHz, 0, ts.fill)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("opening portaudio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("starting portaudio stream: %w", err)
	}
	ts.stream = stream
	return ts, nil
}

// fill is PortAudio's callback: it runs on its own audio thread, so
// it only touches ts.active (atomic) and ts.phase/step, which it
// alone owns.
func (ts *ToneSound) fill(out []float32) {
	if !ts.active.Load() {
		for i := range out {
			out[i] = 0
		}
		return
	}
	for i := range out {
		out[i] = float32(0.3 * math.Sin(ts.phase))
		ts.phase += ts.step
		if ts.phase > 2*math.Pi {
			ts.phase -= 2 * math.Pi
		}
	}
}

// Tick is a no-op: the tone itself runs on PortAudio's own callback
// thread. Tick exists only to satisfy lasertag.Sound, called once per
// ISR tick from Core.
func (ts *ToneSound) Tick() {}

// SetActive turns the tone on or off. Wire this to the hit-LED
// timer's Running() (or any other ISR-facing signal) from the
// foreground loop.
func (ts *ToneSound) SetActive(active bool) {
	ts.active.Store(active)
}

// Close stops the stream and releases PortAudio.
func (ts *ToneSound) Close() error {
	if err := ts.stream.Stop(); err != nil {
		return err
	}
	if err := ts.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
