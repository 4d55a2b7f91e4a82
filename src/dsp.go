package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Generate the fixed FIR and IIR coefficient tables used by
 *		the filter bank.
 *
 * Description:	Coefficients are computed once, at package init, from
 *		closed-form windowed-sinc (FIR) and RBJ-cookbook biquad
 *		(IIR) formulas. SetFrequencyTickTable lets a test bench
 *		regenerate the IIR resonator bank against a non-default set
 *		of channel frequencies; ordinary badge operation never calls
 *		it.
 *
 *------------------------------------------------------------------*/

import "math"

// windowType selects the FIR window shape.
type windowType int

const (
	windowHamming windowType = iota
	windowBlackman
)

// window returns the window-shape multiplier for tap j of size taps.
func window(t windowType, taps, j int) float64 {
	size := float64(taps)
	x := float64(j)

	switch t {
	case windowBlackman:
		return 0.42659 - 0.49656*math.Cos((x*2*math.Pi)/(size-1)) +
			0.076849*math.Cos((x*4*math.Pi)/(size-1))
	case windowHamming:
		fallthrough
	default:
		return 0.53836 - 0.46164*math.Cos((x*2*math.Pi)/(size-1))
	}
}

// genLowpass fills lp with a normalized (unity DC gain) windowed-sinc
// low-pass kernel of the given length, with cutoff fc expressed as a
// fraction of the sampling frequency.
func genLowpass(fc float64, lp []float64, wtype windowType) {
	taps := len(lp)
	center := 0.5 * float64(taps-1)

	for j := 0; j < taps; j++ {
		var sinc float64
		d := float64(j) - center
		if d == 0 {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*d) / (math.Pi * d)
		}
		lp[j] = sinc * window(wtype, taps, j)
	}

	var gain float64
	for _, v := range lp {
		gain += v
	}
	for j := range lp {
		lp[j] /= gain
	}
}

// genResonator fills b (feed-forward) and a (feedback) with a
// constant 0 dB (unity) peak gain second-order bandpass biquad
// centered at fc (fraction of sampling frequency) with quality factor
// q, per the RBJ Audio EQ Cookbook. Only the first three entries of b
// and the first two of a are non-zero; the remainder stay zero, which
// is exactly what the fixed-length iirB[11]/iirA[10] arrays require
// for a second-order section embedded in a 10th-order direct form.
func genResonator(fc, q float64, b []float64, a []float64) {
	Assert(len(b) >= 3 && len(a) >= 2)

	w0 := 2 * math.Pi * fc
	alpha := math.Sin(w0) / (2 * q)
	cosW0 := math.Cos(w0)

	a0 := 1 + alpha
	b0 := alpha / a0
	b1 := 0.0
	b2 := -alpha / a0
	a1 := (-2 * cosW0) / a0
	a2 := (1 - alpha) / a0

	for i := range b {
		b[i] = 0
	}
	for i := range a {
		a[i] = 0
	}
	b[0], b[1], b[2] = b0, b1, b2
	a[0], a[1] = a1, a2
}

const (
	// firTapCount is the FIR tap count.
	firTapCount = 81
	// iirBCoefficientCount is the length of each channel's B array.
	iirBCoefficientCount = 11
	// iirACoefficientCount is the length of each channel's A array.
	iirACoefficientCount = 10
	// decimatedSampleRateHz is the effective post-FIR rate.
	decimatedSampleRateHz = 10000
	// rawSampleRateHz is the ISR tick rate.
	rawSampleRateHz = 100000
	// resonatorQ controls how narrow each channel's passband is.
	resonatorQ = 8.0
)

// frequencyTickTable holds the full-period tick count for each of the
// ten channels.
var frequencyTickTable = [NumChannels]int{68, 58, 50, 44, 38, 34, 30, 28, 26, 24}

// firCoefficients and the per-channel IIR coefficient tables are
// computed once at package init. The FIR kernel is never mutated
// afterward; the IIR tables change only through SetFrequencyTickTable.
var (
	firCoefficients [firTapCount]float64
	iirBCoefficients [NumChannels][iirBCoefficientCount]float64
	iirACoefficients [NumChannels][iirACoefficientCount]float64
)

func init() {
	// Anti-alias lowpass ahead of the decimate-by-10 stage: cutoff at
	// the decimated Nyquist frequency, expressed as a fraction of the
	// raw 100 kHz sample rate.
	cutoff := (decimatedSampleRateHz / 2) / float64(rawSampleRateHz)
	lp := make([]float64, firTapCount)
	genLowpass(cutoff, lp, windowHamming)
	copy(firCoefficients[:], lp)

	genResonatorBank()
}

// genResonatorBank (re)derives every channel's IIR resonator
// coefficients from the current frequencyTickTable.
func genResonatorBank() {
	for k := 0; k < NumChannels; k++ {
		carrierHz := float64(rawSampleRateHz) / float64(frequencyTickTable[k])
		fc := carrierHz / float64(decimatedSampleRateHz)
		b := make([]float64, iirBCoefficientCount)
		a := make([]float64, iirACoefficientCount)
		genResonator(fc, resonatorQ, b, a)
		copy(iirBCoefficients[k][:], b)
		copy(iirACoefficients[k][:], a)
	}
}

// SetFrequencyTickTable overrides the full-period tick count used for
// each channel's carrier and regenerates the IIR resonator bank to
// match. For test benches only: ordinary badges run with the
// hardware-compatible default table for the life of the process.
func SetFrequencyTickTable(table [NumChannels]int) {
	frequencyTickTable = table
	genResonatorBank()
}

// getFirCoefficientArray returns a read-only view of the FIR kernel,
// for test harnesses, matching filter_getFirCoefficientArray.
func getFirCoefficientArray() [firTapCount]float64 {
	return firCoefficients
}

// getIirCoefficientArrays returns a read-only view of channel k's B
// and A coefficients, matching filter_getIirBCoefficientArray /
// filter_getIirACoefficientArray.
func getIirCoefficientArrays(k int) ([iirBCoefficientCount]float64, [iirACoefficientCount]float64) {
	return iirBCoefficients[k], iirACoefficients[k]
}

// FrequencyTicks returns the full-period tick count for channel k,
// clamped into [0, NumChannels). Exported for simulators and test
// harnesses that need to synthesize a carrier at a given channel's
// frequency without duplicating frequencyTickTable.
func FrequencyTicks(k int) int {
	if k < 0 {
		k = 0
	}
	if k >= NumChannels {
		k = NumChannels - 1
	}
	return frequencyTickTable[k]
}
