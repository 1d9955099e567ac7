//go:build linux

package linux

import (
	"github.com/warthog618/go-gpiocdev"
)

// OutLine is a GPIO output line.
type OutLine struct {
	line *gpiocdev.Line
}

// RequestOutput claims a line on the given chip, initially low.
func RequestOutput(chip string, offset int) (*OutLine, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, err
	}
	return &OutLine{line: line}, nil
}

func (l *OutLine) High() { l.line.SetValue(1) }
func (l *OutLine) Low()  { l.line.SetValue(0) }

func (l *OutLine) Close() error {
	l.line.SetValue(0)
	return l.line.Close()
}

// Button is the calibration trigger input. The button pulls the line to
// ground, so the asserted state is the low level.
type Button struct {
	line *gpiocdev.Line
}

// RequestButton claims the trigger line with the internal pull-up.
// Requires Linux 5.5 or later for the pull-up option.
func RequestButton(chip string, offset int) (*Button, error) {
	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp)
	if err != nil {
		return nil, err
	}
	return &Button{line: line}, nil
}

func (b *Button) Get() bool {
	v, err := b.line.Value()
	if err != nil {
		return false
	}
	return v == 0
}

func (b *Button) Close() error {
	return b.line.Close()
}
