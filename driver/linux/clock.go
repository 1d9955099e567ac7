//go:build linux

package linux

import (
	"time"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/clock"
)

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
