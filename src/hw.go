package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Hardware boundary interfaces. Every ISR-owned component
 *		that touches a GPIO line or the ADC talks to one of these
 *		instead of a concrete peripheral, so the same Core runs
 *		against real hardware (internal/hwgpio) or a simulator
 *		(cmd/badgesim) unchanged.
 *
 *------------------------------------------------------------------*/

// Pin is a single digital output or input line. Write drives an
// output; ReadActive reads the current line state regardless of
// direction, used for both trigger input and the gun-disconnect check
// at startup.
type Pin interface {
	Write(active bool)
	ReadActive() bool
}

// ADC is the 12-bit analog front end sampled once per ISR tick.
// Readings are in [0, 4095].
type ADC interface {
	Read() uint16
}

// Sound is the optional audio subsystem ticked once per ISR tick,
// alongside the transmitter and timers. A no-op implementation is
// sufficient when a badge has no speaker.
type Sound interface {
	Tick()
}

// NullSound is a Sound that does nothing, for badges without audio
// hardware or for bench testing.
type NullSound struct{}

// Tick implements Sound.
func (NullSound) Tick() {}

// constPin is a fixed, unwritable Pin, useful for wiring a trigger
// input in tests or simulation where the aux/disconnect sense should
// read as always-connected.
type constPin struct {
	active bool
}

// NewConstPin returns a Pin that always reads the given level and
// discards writes.
func NewConstPin(active bool) Pin {
	return &constPin{active: active}
}

func (p *constPin) Write(bool) {}

func (p *constPin) ReadActive() bool {
	return p.active
}

// memPin is an in-memory Pin for tests and the simulator: Write sets
// state, ReadActive reads back whatever was last written (or the
// initial value), so a test can both drive it as an input stub and
// observe it as an output.
type memPin struct {
	active bool
}

// NewMemPin returns a Pin backed by a plain in-memory bool, seeded to
// initial.
func NewMemPin(initial bool) Pin {
	return &memPin{active: initial}
}

func (p *memPin) Write(active bool) {
	p.active = active
}

func (p *memPin) ReadActive() bool {
	return p.active
}
