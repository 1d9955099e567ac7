package fc

import (
	"github.com/AndreyRakhmanov/AeroSBUSMixer/clock"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sched"
)

const blinkHalfPeriod clock.Micros = 150_000

// statusLED drives the indicator: lit while the receiver is synchronized,
// dark while hunting, and a counted blink burst to acknowledge a
// committed calibration.
type statusLED struct {
	pin sched.OutputPin
	clk clock.Clock
	lit bool
}

func newStatusLED(pin sched.OutputPin, clk clock.Clock) *statusLED {
	return &statusLED{pin: pin, clk: clk}
}

func (l *statusLED) set(on bool) {
	if on == l.lit {
		return
	}
	l.lit = on
	if on {
		l.pin.High()
	} else {
		l.pin.Low()
	}
}

// blink emits n on/off pulses, blocking, and restores the previous level.
// The loop misses input frames while this runs; the synchronizer realigns
// on the next quiet gap.
func (l *statusLED) blink(n int) {
	for i := 0; i < n; i++ {
		l.pin.High()
		clock.Sleep(l.clk, blinkHalfPeriod)
		l.pin.Low()
		clock.Sleep(l.clk, blinkHalfPeriod)
	}
	if l.lit {
		l.pin.High()
	}
}
