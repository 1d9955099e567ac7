// Package sched emits the output pulses. Two pulses go out per input
// frame at fixed offsets from the frame's arrival timestamp; cycle parity
// alternates which physical pair gets driven, so each line updates at
// half the frame rate.
package sched

import (
	"github.com/AndreyRakhmanov/AeroSBUSMixer/clock"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/mix"
)

// OutputPin drives one physical output line.
type OutputPin interface {
	High()
	Low()
}

// Slot deadlines, absolute offsets from the cycle timestamp. Absolute
// deadlines keep the second pulse from inheriting drift accumulated
// during the first.
const (
	Slot1Offset clock.Micros = 1000
	Slot2Offset clock.Micros = 4000
)

// Pins collects the four output lines.
type Pins struct {
	Throttle1 OutputPin
	Throttle2 OutputPin
	Elevon1   OutputPin
	Elevon2   OutputPin
}

// Scheduler emits two timed pulses per cycle, alternating between the
// elevon pair and the throttle pair.
type Scheduler struct {
	clk        clock.Clock
	pins       Pins
	elevonTurn bool
}

func New(clk clock.Clock, pins Pins) *Scheduler {
	return &Scheduler{clk: clk, pins: pins, elevonTurn: true}
}

// Emit drives this cycle's pair: first slot at stamp+Slot1Offset, second
// at stamp+Slot2Offset, strictly in that order. A deadline that has
// already passed fires immediately; no pulse is ever skipped.
func (s *Scheduler) Emit(stamp clock.Micros, out mix.Outputs) {
	if s.elevonTurn {
		s.pulse(stamp+Slot1Offset, s.pins.Elevon1, out.Elevon1)
		s.pulse(stamp+Slot2Offset, s.pins.Elevon2, out.Elevon2)
	} else {
		s.pulse(stamp+Slot1Offset, s.pins.Throttle1, out.Throttle1)
		s.pulse(stamp+Slot2Offset, s.pins.Throttle2, out.Throttle2)
	}
	s.elevonTurn = !s.elevonTurn
}

// pulse waits for the absolute deadline, then holds the line high for the
// pulse width.
func (s *Scheduler) pulse(deadline clock.Micros, pin OutputPin, width uint16) {
	clock.WaitUntil(s.clk, deadline)
	pin.High()
	clock.Sleep(s.clk, clock.Micros(width))
	pin.Low()
}
