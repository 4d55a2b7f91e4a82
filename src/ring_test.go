package lasertag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAdcRingBuffer_PushPop_FIFO(t *testing.T) {
	r := &AdcRingBuffer{}
	r.Init()

	r.Push(10)
	r.Push(20)
	r.Push(30)

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, uint16(10), r.Pop())
	assert.Equal(t, uint16(20), r.Pop())
	assert.Equal(t, uint16(30), r.Pop())
	assert.Equal(t, 0, r.Count())
}

func TestAdcRingBuffer_PopEmpty_ReturnsZero(t *testing.T) {
	r := &AdcRingBuffer{}
	r.Init()

	assert.Equal(t, uint16(0), r.Pop())
}

func TestAdcRingBuffer_OverwriteOnFull_DropsOldest(t *testing.T) {
	r := &AdcRingBuffer{}
	r.Init()

	for i := 0; i < AdcRingCapacity; i++ {
		r.Push(uint16(i))
	}
	assert.Equal(t, AdcRingCapacity, r.Count())

	// one more push should evict sample 0, not grow past capacity
	r.Push(uint16(99999))
	assert.Equal(t, AdcRingCapacity, r.Count())
	assert.Equal(t, uint16(1), r.Pop(), "oldest surviving sample should be index 1")
}

// TestAdcRingBuffer_CountNeverExceedsCapacity checks the saturation
// invariant holds for any sequence of pushes interleaved with pops.
func TestAdcRingBuffer_CountNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := &AdcRingBuffer{}
		r.Init()

		ops := rapid.SliceOfN(rapid.IntRange(0, 1), 0, 500).Draw(rt, "ops")
		for _, op := range ops {
			if op == 0 {
				r.Push(0)
			} else {
				r.Pop()
			}
			assert.LessOrEqual(rt, r.Count(), AdcRingCapacity)
			assert.GreaterOrEqual(rt, r.Count(), 0)
		}
	})
}
