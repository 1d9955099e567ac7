package mix

import (
	"math"
	"testing"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/calib"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sbus"
)

func calibrated() calib.Ranges {
	var rs calib.Ranges
	for ch := range rs {
		rs[ch] = calib.Range{Min: 200, Max: 1800}
	}
	return rs
}

// within allows one pulse-quantization step of slack.
func within(a, b uint16) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= 1
}

func TestNeutralSticksAreSymmetric(t *testing.T) {
	rs := calibrated()
	out := Mix([sbus.NumChannels]uint16{1000, 1000, 1000, 1000}, rs)

	if !within(out.Throttle1, out.Throttle2) {
		t.Errorf("neutral throttle asymmetric: %d vs %d", out.Throttle1, out.Throttle2)
	}
	if !within(out.Elevon1, out.Elevon2) {
		t.Errorf("neutral elevons asymmetric: %d vs %d", out.Elevon1, out.Elevon2)
	}
}

func TestFullThrottleCenteredRudder(t *testing.T) {
	rs := calibrated()
	out := Mix([sbus.NumChannels]uint16{1000, 1800, 1000, 1000}, rs)

	want := toPulse(1, rs[sbus.ChThrottle])
	if out.Throttle1 != want || out.Throttle2 != want {
		t.Errorf("full throttle = %d/%d, want both %d", out.Throttle1, out.Throttle2, want)
	}
}

func TestDifferentialSkewsThrottles(t *testing.T) {
	rs := calibrated()

	// Half throttle, full right rudder: no clipping, pure differential.
	out := Mix([sbus.NumChannels]uint16{1800, 1000, 1000, 1000}, rs)
	if out.Throttle1 <= out.Throttle2 {
		t.Errorf("rudder did not skew throttles: %d vs %d", out.Throttle1, out.Throttle2)
	}

	// tN=0.5, diff=1: thr1 = 0.5*1.8 = 0.9, thr2 = 0.5*0.2 = 0.1.
	if got, want := out.Throttle1, toPulse(0.9, rs[sbus.ChThrottle]); got != want {
		t.Errorf("throttle1 = %d, want %d", got, want)
	}
	if got, want := out.Throttle2, toPulse(0.1, rs[sbus.ChThrottle]); got != want {
		t.Errorf("throttle2 = %d, want %d", got, want)
	}
}

// Overflow redistribution: the clipping excess on one motor comes off the
// other, so the differential survives saturation. Checked directly on the
// mix arithmetic across the stick envelope.
func TestOverflowRedistribution(t *testing.T) {
	for tRaw := 0.0; tRaw <= 1.0; tRaw += 0.05 {
		for rRaw := 0.0; rRaw <= 1.0; rRaw += 0.05 {
			diff := 2 * (rRaw - 0.5)
			thr1 := tRaw * (1 + diff*DifferentialAuthority)
			thr2 := tRaw * (1 - diff*DifferentialAuthority)

			extra1 := math.Max(0, thr1-1)
			extra2 := math.Max(0, thr2-1)
			out1 := thr1 - extra2
			out2 := thr2 - extra1

			// No unexplained energy gain: an output may only exceed 1.0
			// by its own pre-clip excess, and total always shrinks by
			// what was clipped.
			if out1 > 1+extra1+1e-9 || out2 > 1+extra2+1e-9 {
				t.Fatalf("t=%.2f r=%.2f: outputs %v/%v exceed redistributed bound", tRaw, rRaw, out1, out2)
			}
			if sum, want := out1+out2, thr1+thr2-extra1-extra2; math.Abs(sum-want) > 1e-9 {
				t.Fatalf("t=%.2f r=%.2f: thrust sum %v, want %v", tRaw, rRaw, sum, want)
			}
			// At most one side can clip for any stick position.
			if extra1 > 0 && extra2 > 0 {
				t.Fatalf("t=%.2f r=%.2f: both sides clipped", tRaw, rRaw)
			}
		}
	}
}

func TestElevonMixAndInversion(t *testing.T) {
	rs := calibrated()

	// Pitch up, centered roll: eN=1, aN=0.5 -> elv1 = 1.0,
	// elv2 = 1 - (1 - 0.5 + 0.5) = 0. The second surface moves opposite.
	out := Mix([sbus.NumChannels]uint16{1000, 1000, 1000, 1800}, rs)
	if got, want := out.Elevon1, toPulse(1, rs[sbus.ChElevator]); got != want {
		t.Errorf("elevon1 = %d, want %d", got, want)
	}
	if got, want := out.Elevon2, toPulse(0, rs[sbus.ChElevator]); got != want {
		t.Errorf("elevon2 = %d, want %d", got, want)
	}

	// Full roll, centered pitch: aN=1, eN=0.5 -> elv1 = 1.0,
	// elv2 = 1 - (0.5 - 1 + 0.5) = 1. Both surfaces deflect the same way
	// in actuator terms, rolling the wing.
	out = Mix([sbus.NumChannels]uint16{1000, 1000, 1800, 1000}, rs)
	if got, want := out.Elevon1, toPulse(1, rs[sbus.ChElevator]); got != want {
		t.Errorf("roll elevon1 = %d, want %d", got, want)
	}
	if got, want := out.Elevon2, toPulse(1, rs[sbus.ChElevator]); got != want {
		t.Errorf("roll elevon2 = %d, want %d", got, want)
	}
}

func TestPulseWidthBounds(t *testing.T) {
	ranges := []calib.Range{
		{Min: 10, Max: 2000},
		{Min: 200, Max: 1800},
		{Min: 700, Max: 1301},
		{Min: 0, Max: 2047},
	}

	for _, r := range ranges {
		lo := uint16(PulseBase)
		hi := uint16(PulseBase + float64(r.Span())*PulseScale)
		for v := -0.5; v <= 1.5; v += 0.01 {
			p := toPulse(v, r)
			if p < lo || p > hi {
				t.Fatalf("range %v: toPulse(%.2f) = %d outside [%d, %d]", r, v, p, lo, hi)
			}
		}
		if got := toPulse(0, r); got != lo {
			t.Errorf("range %v: toPulse(0) = %d, want %d", r, got, lo)
		}
		if got := toPulse(1, r); got != hi {
			t.Errorf("range %v: toPulse(1) = %d, want %d", r, got, hi)
		}
	}
}

// The span offset rounds to the nearest step. Half throttle with full
// rudder computes the low side as 0.5*0.2, which floats represent just
// under 0.1; truncation would land it one pulse step below the exact
// value.
func TestPulseRoundsNearestStep(t *testing.T) {
	r := calib.Range{Min: 200, Max: 1800} // span 1600

	if got, want := toPulse(0.5*0.2, r), toPulse(0.1, r); got != want {
		t.Errorf("toPulse(0.5*0.2) = %d, toPulse(0.1) = %d, want equal", got, want)
	}
	// 0.1 * 1600 = 160 exactly: 880 + 160*0.65 = 984.
	if got := toPulse(0.1, r); got != 984 {
		t.Errorf("toPulse(0.1) = %d, want 984", got)
	}
}

func TestMixConstants(t *testing.T) {
	if DifferentialAuthority != 0.8 {
		t.Errorf("DifferentialAuthority = %v, want 0.8", DifferentialAuthority)
	}
	if PulseBase != 880 {
		t.Errorf("PulseBase = %v, want 880", PulseBase)
	}
	if PulseScale != 0.65 {
		t.Errorf("PulseScale = %v, want 0.65", PulseScale)
	}
}

func TestOutOfRangeRawSaturates(t *testing.T) {
	rs := calibrated()

	low := Mix([sbus.NumChannels]uint16{1000, 0, 1000, 1000}, rs)
	if got, want := low.Throttle1, toPulse(0, rs[sbus.ChThrottle]); got != want {
		t.Errorf("below-range throttle = %d, want %d", got, want)
	}

	high := Mix([sbus.NumChannels]uint16{1000, 2047, 1000, 1000}, rs)
	if got, want := high.Throttle1, toPulse(1, rs[sbus.ChThrottle]); got != want {
		t.Errorf("above-range throttle = %d, want %d", got, want)
	}
}
