package sched

import (
	"testing"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/driver/stub"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/mix"
)

func testRig() (*stub.Clock, Pins, *Scheduler, [4]*stub.Pin) {
	clk := stub.NewClock()
	pins := [4]*stub.Pin{
		{Clk: clk}, {Clk: clk}, {Clk: clk}, {Clk: clk},
	}
	p := Pins{
		Throttle1: pins[0],
		Throttle2: pins[1],
		Elevon1:   pins[2],
		Elevon2:   pins[3],
	}
	return clk, p, New(clk, p), pins
}

func TestParityAlternatesPairs(t *testing.T) {
	clk, _, s, pins := testRig()
	out := mix.Outputs{Throttle1: 1200, Throttle2: 1300, Elevon1: 1400, Elevon2: 1500}

	s.Emit(clk.Now(), out)
	if len(pins[2].Events) == 0 || len(pins[3].Events) == 0 {
		t.Fatal("first cycle did not drive the elevon pair")
	}
	if len(pins[0].Events) != 0 || len(pins[1].Events) != 0 {
		t.Fatal("first cycle drove the throttle pair")
	}

	s.Emit(clk.Now(), out)
	if len(pins[0].Events) == 0 || len(pins[1].Events) == 0 {
		t.Fatal("second cycle did not drive the throttle pair")
	}

	s.Emit(clk.Now(), out)
	if len(pins[2].Events) != 4 {
		t.Fatalf("third cycle did not return to the elevon pair, events %v", pins[2].Events)
	}
}

func TestSlotDeadlines(t *testing.T) {
	clk, _, s, pins := testRig()
	stamp := clk.Now()
	s.Emit(stamp, mix.Outputs{Elevon1: 1100, Elevon2: 1600})

	first := pins[2].Events
	second := pins[3].Events
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("want rise+fall per slot, got %d/%d events", len(first), len(second))
	}

	if first[0].At != stamp+Slot1Offset {
		t.Errorf("slot 1 rise at %d, want %d", first[0].At, stamp+Slot1Offset)
	}
	if second[0].At != stamp+Slot2Offset {
		t.Errorf("slot 2 rise at %d, want %d", second[0].At, stamp+Slot2Offset)
	}

	// Hold duration, allowing the clock's step granularity.
	hold := first[1].At - first[0].At
	if hold < 1100 || hold > 1102 {
		t.Errorf("slot 1 hold = %dµs, want 1100", hold)
	}
	hold = second[1].At - second[0].At
	if hold < 1600 || hold > 1602 {
		t.Errorf("slot 2 hold = %dµs, want 1600", hold)
	}

	// Slot order is fixed: slot 1 fully precedes slot 2.
	if first[1].At > second[0].At {
		t.Error("slot 1 fall after slot 2 rise")
	}
}

func TestMissedDeadlineFiresImmediately(t *testing.T) {
	clk, _, s, pins := testRig()
	stamp := clk.Now()
	clk.Advance(10_000) // cycle start is long past both deadlines

	before := clk.Now()
	s.Emit(stamp, mix.Outputs{Elevon1: 1000, Elevon2: 1000})

	rise := pins[2].Events[0].At
	if rise < before || rise > before+2 {
		t.Errorf("late pulse rose at %d, want immediately after %d", rise, before)
	}
	if len(pins[3].Events) != 2 {
		t.Error("second slot skipped after missed deadline")
	}
}
