// Package stub provides host-side test doubles for the hardware surfaces:
// a scripted byte source, a manual microsecond clock, recording pins and a
// RAM-backed calibration store.
package stub

import (
	"errors"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/calib"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/clock"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sbus"
)

// ErrNoData is returned by Source.ReadByte when the script is exhausted.
var ErrNoData = errors.New("stub: no data buffered")

// Source is a scripted sbus.ByteSource. It models the two ways bytes
// reach the real UART: in-flight bytes (Inject) are only handed out by a
// blocking read and are invisible to Buffered, while pending bytes
// (InjectPending) already sit in the receive buffer, which is what the
// synchronizer's overrun check looks at.
type Source struct {
	pending []byte
	future  []byte
}

func NewSource() *Source {
	return &Source{}
}

// Inject queues in-flight bytes, delivered when the reader blocks for
// them.
func (s *Source) Inject(b ...byte) {
	s.future = append(s.future, b...)
}

// InjectFrame queues a whole in-flight frame.
func (s *Source) InjectFrame(f sbus.Frame) {
	s.Inject(f[:]...)
}

// InjectPending places bytes directly in the receive buffer.
func (s *Source) InjectPending(b ...byte) {
	s.pending = append(s.pending, b...)
}

func (s *Source) ReadByte() (byte, error) {
	if len(s.pending) > 0 {
		b := s.pending[0]
		s.pending = s.pending[1:]
		return b, nil
	}
	if len(s.future) > 0 {
		b := s.future[0]
		s.future = s.future[1:]
		return b, nil
	}
	return 0, ErrNoData
}

func (s *Source) Buffered() int {
	return len(s.pending)
}

// Clock is a manual monotonic clock. Every Now call advances time by
// Step, so busy-wait loops always terminate deterministically.
type Clock struct {
	Step clock.Micros
	now  clock.Micros
}

func NewClock() *Clock {
	return &Clock{Step: 1}
}

func (c *Clock) Now() clock.Micros {
	c.now += c.Step
	return c.now
}

// Advance jumps time forward without a Now call.
func (c *Clock) Advance(d clock.Micros) {
	c.now += d
}

// PinEvent records one level transition and when it happened.
type PinEvent struct {
	Level int
	At    clock.Micros
}

// Pin is a recording output pin. If Clk is set, events carry timestamps.
type Pin struct {
	Clk    *Clock
	Events []PinEvent
	level  int
}

func (p *Pin) High() { p.record(1) }
func (p *Pin) Low()  { p.record(0) }

func (p *Pin) record(level int) {
	p.level = level
	ev := PinEvent{Level: level}
	if p.Clk != nil {
		ev.At = p.Clk.now
	}
	p.Events = append(p.Events, ev)
}

// Level is the pin's current output level.
func (p *Pin) Level() int {
	return p.level
}

// Button is a settable input pin.
type Button struct {
	Pressed bool
}

func (b *Button) Get() bool {
	return b.Pressed
}

// Store is a RAM-backed calibration store that counts writes, so tests
// can assert a rejected session never touched it.
type Store struct {
	Cells  [calib.StoreSlots]byte
	Writes int
}

func (s *Store) ReadByte(addr int) byte {
	return s.Cells[addr]
}

func (s *Store) WriteByte(addr int, value byte) {
	s.Cells[addr] = value
	s.Writes++
}
