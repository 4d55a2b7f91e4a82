package lasertag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransmitter_PulseLength_ExactlyTransmitterPulseTicks(t *testing.T) {
	pin := NewMemPin(false)
	tx := NewTransmitter(pin)
	tx.Init()
	tx.SetFrequencyIndex(0)
	tx.Run()

	for i := 0; i < TransmitterPulseTicks+10; i++ {
		tx.Tick()
	}

	assert.False(t, pin.ReadActive(), "pulse must have returned to low by then")
	assert.False(t, tx.Running())
}

func TestTransmitter_ContinuousMode_NeverStopsOnItsOwn(t *testing.T) {
	pin := NewMemPin(false)
	tx := NewTransmitter(pin)
	tx.Init()
	tx.SetContinuousMode(true)
	tx.SetFrequencyIndex(1)
	tx.Run()

	for i := 0; i < TransmitterPulseTicks*3; i++ {
		tx.Tick()
	}

	assert.True(t, tx.Running(), "continuous mode must never self-terminate")
}

func TestTransmitter_HalfPeriod_ExactTickCounts(t *testing.T) {
	pin := NewMemPin(false)
	tx := NewTransmitter(pin)
	tx.Init()
	tx.SetContinuousMode(true)
	tx.SetFrequencyIndex(0)
	tx.Run()

	half := frequencyTickTable[0] / 2

	tx.Tick() // consumes the off->high edge
	require.True(t, pin.ReadActive())

	for i := 0; i < half-1; i++ {
		tx.Tick()
		assert.True(t, pin.ReadActive(), "should still be high before half-period elapses")
	}
	tx.Tick()
	assert.False(t, pin.ReadActive(), "should flip low exactly at the half-period boundary")
}

func TestTransmitter_SetFrequencyIndex_ClampsOutOfRange(t *testing.T) {
	tx := NewTransmitter(NewMemPin(false))
	tx.Init()

	tx.SetFrequencyIndex(-5)
	assert.Equal(t, 0, tx.FrequencyIndex())

	tx.SetFrequencyIndex(NumChannels + 5)
	assert.Equal(t, NumChannels-1, tx.FrequencyIndex())
}

func TestTransmitter_SetFrequencyIndex_LatchedMidPulse(t *testing.T) {
	tx := NewTransmitter(NewMemPin(false))
	tx.Init()
	tx.SetFrequencyIndex(0)
	tx.Run()
	tx.Tick() // enters high_st

	tx.SetFrequencyIndex(3)
	assert.Equal(t, 0, tx.FrequencyIndex(), "mid-pulse updates are ignored outside continuous mode")
}

func TestTransmitter_Running_TrueAfterRunBeforeFirstTick(t *testing.T) {
	tx := NewTransmitter(NewMemPin(false))
	tx.Init()
	tx.Run()
	assert.True(t, tx.Running())
}
