//go:build tinygo || baremetal

// Package board adapts the TinyGo machine package to the controller's
// hardware surfaces for embedded targets. The calibration store is board
// specific (EEPROM availability varies) and is supplied by the firmware.
package board

import (
	"machine"
	"time"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/clock"
)

// UART wraps a machine UART as an sbus.ByteSource. Configure the port for
// 100000 baud, even parity, two stop bits; SBUS is inverted at the
// physical layer, so the receiver must sit behind an inverter unless the
// UART supports RX inversion.
type UART struct {
	uart *machine.UART
}

func NewUART(u *machine.UART) *UART {
	return &UART{uart: u}
}

func (u *UART) ReadByte() (byte, error) {
	return u.uart.ReadByte()
}

func (u *UART) Buffered() int {
	return u.uart.Buffered()
}

// Pin is a GPIO output line.
type Pin struct {
	pin machine.Pin
}

func Output(p machine.Pin) *Pin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &Pin{pin: p}
}

func (p *Pin) High() { p.pin.High() }
func (p *Pin) Low()  { p.pin.Low() }

// Button is the calibration trigger, wired to ground with the internal
// pull-up, so asserted reads low.
type Button struct {
	pin machine.Pin
}

func Input(p machine.Pin) *Button {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &Button{pin: p}
}

func (b *Button) Get() bool {
	return !b.pin.Get()
}

// Clock is a monotonic microsecond clock anchored at construction.
type Clock struct {
	start time.Time
}

func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

func (c *Clock) Now() clock.Micros {
	return clock.Micros(time.Since(c.start).Microseconds())
}
