// Package hwgpio wires lasertag.Pin to real Linux GPIO character
// device lines, for badges running on a Raspberry Pi or similar SBC
// rather than the bare-metal target the original firmware targeted.
package hwgpio

/*------------------------------------------------------------------
 *
 * Purpose:	lasertag.Pin implementation backed by go-gpiocdev.
 *
 * Description:	The actual line handle is isolated behind a small
 *		settable/closable interface (gpioLine) so tests can inject a
 *		mock without real hardware or the gpio-sim kernel module.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// gpioLine is the subset of *gpiocdev.Line that OutputPin/InputPin
// depend on, so tests can substitute a mock.
type gpioLine interface {
	SetValue(v int) error
	Value() (int, error)
	Close() error
}

// OutputPin drives a single GPIO line as a digital output: the
// transmitter carrier and the hit indicator.
type OutputPin struct {
	line gpioLine
}

// NewOutputPin requests offset on chip as an output line, initially
// inactive.
func NewOutputPin(chip string, offset int) (*OutputPin, error) {
	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("requesting gpio line %s:%d as output: %w", chip, offset, err)
	}
	return &OutputPin{line: line}, nil
}

// Write drives the line high (active) or low.
func (p *OutputPin) Write(active bool) {
	v := 0
	if active {
		v = 1
	}
	// Best-effort: the Pin interface has no error return, matching the
	// original firmware's mio_writePin, which cannot fail on real
	// hardware either.
	_ = p.line.SetValue(v)
}

// ReadActive reads back the line's last driven value.
func (p *OutputPin) ReadActive() bool {
	v, err := p.line.Value()
	if err != nil {
		return false
	}
	return v != 0
}

// Close releases the underlying line handle.
func (p *OutputPin) Close() error {
	return p.line.Close()
}

// InputPin reads a single GPIO line: the trigger and gun-disconnect
// sense input.
type InputPin struct {
	line gpioLine
}

// NewInputPin requests offset on chip as an input line.
func NewInputPin(chip string, offset int) (*InputPin, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsInput)
	if err != nil {
		return nil, fmt.Errorf("requesting gpio line %s:%d as input: %w", chip, offset, err)
	}
	return &InputPin{line: line}, nil
}

// Write is a no-op: this line is hardware-configured as an input.
func (p *InputPin) Write(bool) {}

// ReadActive reports the line's current logic level.
func (p *InputPin) ReadActive() bool {
	v, err := p.line.Value()
	if err != nil {
		return false
	}
	return v != 0
}

// Close releases the underlying line handle.
func (p *InputPin) Close() error {
	return p.line.Close()
}
