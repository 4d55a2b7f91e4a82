package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Single-producer (ISR) / single-consumer (detector)
 *		bounded queue of raw ADC samples, with overwrite-on-full.
 *
 * Description:	Ported from the behavior of isr.c's adcBuffer /
 *		isr_addDataToAdcBuffer / isr_removeDataFromAdcBuffer /
 *		isr_adcBufferElementCount. Push always succeeds; when full,
 *		the oldest sample is dropped to make room and count does not
 *		grow past capacity. Pop on an empty buffer returns zero -
 *		callers must gate on Count() first, matching the original's
 *		defensive-but-unchecked behavior.
 *
 *------------------------------------------------------------------*/

import "sync"

// AdcRingCapacity is N_adc from the data model: capacity 20001.
const AdcRingCapacity = 20001

// AdcRingBuffer is the bounded single-producer/single-consumer sample
// queue between the ISR and the foreground detector loop.
//
// The only mutual-exclusion primitive in the original firmware is
// masking the ARM interrupt around "read count, pop one sample". On a
// general-purpose OS there is no interrupt controller to mask, so this
// type uses a mutex sized to guard exactly that critical section - it
// stands in for interrupt masking, not for general concurrent access.
type AdcRingBuffer struct {
	mu      sync.Mutex
	data    [AdcRingCapacity]uint16
	front   int
	back    int
	count   int
	wasFull bool
}

// Init resets the buffer to empty. Safe to call once at startup; the
// buffer is never freed afterward.
func (r *AdcRingBuffer) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.front = 0
	r.back = 0
	r.count = 0
	r.wasFull = false
}

// Push appends a raw sample. Called from the ISR context at 100 kHz.
// Always succeeds; when the buffer is full the oldest sample is
// dropped to make room. Logging happens outside the lock and only on
// the not-full -> full edge, so a foreground consumer that has fallen
// behind gets exactly one warning per saturation episode rather than
// one per dropped sample.
func (r *AdcRingBuffer) Push(sample uint16) {
	r.mu.Lock()
	full := r.count == AdcRingCapacity
	becameFull := full && !r.wasFull

	r.data[r.back] = sample
	r.back = (r.back + 1) % AdcRingCapacity
	if full {
		r.front = (r.front + 1) % AdcRingCapacity
	} else {
		r.count++
	}
	r.wasFull = full
	r.mu.Unlock()

	if becameFull {
		logger.Warn("ring buffer overwrite: foreground detector is falling behind", "capacity", AdcRingCapacity)
	}
}

// Pop removes and returns the oldest sample, or zero if the buffer is
// empty. Called from the foreground detector; gate on Count() first.
func (r *AdcRingBuffer) Pop() uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return 0
	}
	v := r.data[r.front]
	r.front = (r.front + 1) % AdcRingCapacity
	r.count--
	return v
}

// Count returns the number of samples currently buffered.
func (r *AdcRingBuffer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
