package calib

import (
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sbus"
)

// Engine is the calibration state machine. It is IDLE until the trigger
// is asserted, learns ranges while the trigger is held, and on release
// either commits the session to the store or throws it away and reloads
// the last persisted ranges. No partial calibration ever reaches the
// store.
type Engine struct {
	store       Store
	ranges      Ranges
	calibrating bool
}

// NewEngine loads the persisted ranges and starts IDLE.
func NewEngine(store Store) *Engine {
	return &Engine{
		store:  store,
		ranges: Load(store),
	}
}

// Calibrating reports whether a session is in progress. While true, the
// controller must not drive any output.
func (e *Engine) Calibrating() bool {
	return e.calibrating
}

// Ranges returns the active ranges: the committed set while IDLE, the
// session's work-in-progress set while calibrating.
func (e *Engine) Ranges() Ranges {
	return e.ranges
}

// Update advances the state machine by one cycle. trigger is the live
// calibration button state, channels the cycle's decoded values. It
// returns true exactly once per committed session, on the cycle the
// session validated and was written out.
func (e *Engine) Update(trigger bool, channels [sbus.NumChannels]uint16) bool {
	switch {
	case trigger && !e.calibrating:
		e.calibrating = true
		for ch := range e.ranges {
			e.ranges[ch] = Range{Min: SentinelMid, Max: SentinelMid}
		}
		e.observe(channels)

	case trigger:
		e.observe(channels)

	case e.calibrating:
		e.calibrating = false
		return e.finish()
	}
	return false
}

// observe widens every channel's range to cover the sample.
func (e *Engine) observe(channels [sbus.NumChannels]uint16) {
	for ch, v := range channels {
		if v < e.ranges[ch].Min {
			e.ranges[ch].Min = v
		}
		if v > e.ranges[ch].Max {
			e.ranges[ch].Max = v
		}
	}
}

// finish validates the completed session. All four channels must have
// swept more than MinValidSpan or the whole session is rejected and the
// previous calibration reloaded. A committed session is read back from
// the store so the active ranges carry the stored granularity and the
// next boot mixes identically.
func (e *Engine) finish() bool {
	for _, r := range e.ranges {
		if r.Span() <= MinValidSpan {
			e.ranges = Load(e.store)
			return false
		}
	}
	Save(e.store, e.ranges)
	e.ranges = Load(e.store)
	return true
}
