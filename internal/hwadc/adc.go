// Package hwadc wires lasertag.ADC to a real MCP3008-style SPI analog
// front end, for badges whose sensor photodiode is digitized off-chip
// rather than by an on-die ADC peripheral.
package hwadc

/*------------------------------------------------------------------
 *
 * Purpose:	lasertag.ADC implementation backed by periph.io's SPI
 *		conn package.
 *
 * Description:	go-gpiocdev (used by hwgpio) has no SPI support, and
 *		none of the other retrieved badge-adjacent dependencies do
 *		either. periph.io/x/conn and periph.io/x/host, pulled from
 *		the pack's seedhammer-seedhammer repo (a GPIO/peripheral
 *		driver codebase of the same flavor as this one), fill that
 *		gap - the same host.Init()-then-open-a-bus shape as that
 *		repo's driver/wshat package, applied here to an SPI ADC
 *		channel instead of GPIO buttons.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Channel reads a single MCP3008 single-ended input over SPI,
// satisfying lasertag.ADC.
type Channel struct {
	conn    spi.Conn
	channel int
}

// Open initializes the periph.io host drivers and opens busName (e.g.
// "/dev/spidev0.0") at speedHz, targeting the given single-ended
// MCP3008 input channel in [0, 7].
func Open(busName string, speedHz physic.Frequency, channel int) (*Channel, error) {
	if channel < 0 || channel > 7 {
		return nil, fmt.Errorf("hwadc: channel %d out of range [0, 7]", channel)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hwadc: initializing host drivers: %w", err)
	}
	port, err := spireg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("hwadc: opening %s: %w", busName, err)
	}
	conn, err := port.Connect(speedHz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("hwadc: connecting to %s: %w", busName, err)
	}
	return &Channel{conn: conn, channel: channel}, nil
}

// Read performs one MCP3008 single-ended conversion and returns the
// 10-bit result left-shifted by two onto the 12-bit scale, within
// the [0, 4095] range scaleAdcSample expects.
//
// MCP3008 protocol: send {start bit, single/diff + channel select,
// don't-care}, receive a 10-bit result split across the low 2 bits of
// the second reply byte and all 8 bits of the third.
func (c *Channel) Read() uint16 {
	tx := []byte{
		0x01,
		byte(0x80 | (c.channel << 4)),
		0x00,
	}
	rx := make([]byte, len(tx))
	if err := c.conn.Tx(tx, rx); err != nil {
		return 0
	}
	raw := (uint16(rx[1]&0x03) << 8) | uint16(rx[2])
	// Scale the 10-bit MCP3008 reading up to the 12-bit range the
	// detector's scaleAdcSample assumes.
	return raw << 2
}
