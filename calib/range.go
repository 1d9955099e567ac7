// Package calib owns the per-channel calibration ranges: learning them in
// a button-driven session, validating them, and persisting them to the
// byte-slot calibration store.
package calib

import (
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sbus"
)

const (
	// SentinelMid seeds both bounds at the start of a calibration session
	// so the first observed sample establishes the initial range.
	SentinelMid = 1000

	// MinValidSpan is the smallest usable stick travel. A session where
	// any channel moved 600 units or less is rejected outright.
	MinValidSpan = 600
)

// Range is a channel's learned (min, max) raw value pair. Outside of a
// calibration session min <= max always holds.
type Range struct {
	Min uint16
	Max uint16
}

// Span is the range width, zero for degenerate ranges.
func (r Range) Span() uint16 {
	if r.Max <= r.Min {
		return 0
	}
	return r.Max - r.Min
}

// Normalize maps a raw channel value into [0,1] against the range.
// Values outside the range saturate at 0 or 1, never extrapolate.
func (r Range) Normalize(raw uint16) float64 {
	span := float64(r.Max) - float64(r.Min)
	if span <= 0 {
		return 0
	}
	return clamp01((float64(raw) - float64(r.Min)) / span)
}

// Ranges holds one Range per logical channel, indexed sbus.ChRudder
// through sbus.ChElevator.
type Ranges [sbus.NumChannels]Range

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
