package lasertag

import "fmt"

// Assert panics if cond is false. Used the way the original C used
// assert() - to guard invariants on fixed-size internal structures that
// should never be violated by correct callers (index bounds, queue
// sizes), not to validate external input.
func Assert(cond bool) {
	if !cond {
		panic("lasertag: assertion failed")
	}
}

// Assertf is Assert with a formatted message, used where the failing
// value itself is worth naming in the panic (e.g. an out-of-range
// index) rather than a bare "assertion failed".
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("lasertag: "+format, args...))
	}
}
