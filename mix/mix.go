// Package mix turns calibrated channel values into the four output pulse
// widths: differential throttle for the two motors and the two elevon
// surfaces sharing pitch and roll.
package mix

import (
	"math"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/calib"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sbus"
)

const (
	// DifferentialAuthority controls how strongly rudder input skews the
	// two throttle outputs apart.
	DifferentialAuthority = 0.8

	// PulseBase and PulseScale encode the actuators' pulse-width-to-
	// position calibration: pulse = PulseBase + scaled*PulseScale, with
	// scaled the integer offset into the channel's calibrated span.
	// These values are fixed by the installed hardware.
	PulseBase  = 880
	PulseScale = 0.65
)

// Outputs holds the four pulse widths for one cycle, in microseconds.
type Outputs struct {
	Throttle1 uint16
	Throttle2 uint16
	Elevon1   uint16
	Elevon2   uint16
}

// Mix computes one cycle's outputs from the decoded channels and the
// current calibration. ranges is read-only here; the calibration engine
// is the only writer and never runs in the same cycle as the mixer.
func Mix(channels [sbus.NumChannels]uint16, ranges calib.Ranges) Outputs {
	rN := ranges[sbus.ChRudder].Normalize(channels[sbus.ChRudder])
	tN := ranges[sbus.ChThrottle].Normalize(channels[sbus.ChThrottle])

	// Differential throttle: rudder skews the motors apart around the
	// common throttle setting. Deliberately not clamped yet.
	diff := 2 * (rN - 0.5)
	thr1 := tN * (1 + diff*DifferentialAuthority)
	thr2 := tN * (1 - diff*DifferentialAuthority)

	// When one motor clips above 1.0 the excess is taken off the other
	// motor instead, trading total thrust for turning authority.
	var extra1, extra2 float64
	if thr1 > 1 {
		extra1 = thr1 - 1
	}
	if thr2 > 1 {
		extra2 = thr2 - 1
	}

	aN := ranges[sbus.ChAileron].Normalize(channels[sbus.ChAileron])
	eN := ranges[sbus.ChElevator].Normalize(channels[sbus.ChElevator])

	// Elevon mix: both surfaces carry pitch, roll splits them. The second
	// surface is mounted mirrored, so its command is inverted.
	elv1 := eN + aN - 0.5
	elv2 := 1.0 - (eN - aN + 0.5)

	return Outputs{
		Throttle1: toPulse(thr1-extra2, ranges[sbus.ChThrottle]),
		Throttle2: toPulse(thr2-extra1, ranges[sbus.ChThrottle]),
		Elevon1:   toPulse(elv1, ranges[sbus.ChElevator]),
		Elevon2:   toPulse(elv2, ranges[sbus.ChElevator]),
	}
}

// toPulse converts a mixed value back to microseconds: clamp, map onto
// the channel's calibrated span, then apply the fixed pulse transform.
// The span offset is rounded, not truncated, so commands a float ulp
// apart land on the same pulse step.
func toPulse(v float64, r calib.Range) uint16 {
	scaled := int(math.Round(mapRange(constrain(v, 0, 1), 0, 1, 0, float64(r.Span()))))
	return uint16(PulseBase + float64(scaled)*PulseScale)
}
