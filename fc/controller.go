// Package fc ties the receiver, calibration, mixer and pulse scheduler
// into the per-frame control loop.
package fc

import (
	"github.com/AndreyRakhmanov/AeroSBUSMixer/calib"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/clock"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/mix"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sbus"
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sched"
)

// InputPin reads a digital input. Get reports the asserted state of the
// calibration trigger button.
type InputPin interface {
	Get() bool
}

const (
	// BootResetHold is how long the trigger must stay held at power-up to
	// reformat the calibration store.
	BootResetHold clock.Micros = 3_000_000

	// commitBlinks acknowledges a committed calibration.
	commitBlinks = 3
)

// Config wires the controller to its hardware.
type Config struct {
	Source      sbus.ByteSource
	Clock       clock.Clock
	Store       calib.Store
	Pins        sched.Pins
	Trigger     InputPin
	Status      sched.OutputPin
	FailsafeOut sched.OutputPin
}

// Controller runs the single-threaded control loop: one cycle per input
// frame, decode then either calibrate or mix-and-emit, never both.
type Controller struct {
	cfg    Config
	sync   *sbus.Synchronizer
	engine *calib.Engine
	sched  *sched.Scheduler
	led    *statusLED
}

// New performs the boot sequence: the boot-time reset gesture check, then
// loading the persisted calibration. Outputs start idle.
func New(cfg Config) *Controller {
	c := &Controller{
		cfg:   cfg,
		sync:  sbus.NewSynchronizer(cfg.Source, cfg.Clock),
		sched: sched.New(cfg.Clock, cfg.Pins),
		led:   newStatusLED(cfg.Status, cfg.Clock),
	}

	// Holding the trigger through the boot delay resets the store to
	// factory defaults before anything reads it.
	if cfg.Trigger.Get() {
		clock.Sleep(cfg.Clock, BootResetHold)
		if cfg.Trigger.Get() {
			calib.Format(cfg.Store)
			c.led.blink(commitBlinks)
		}
	}

	c.engine = calib.NewEngine(cfg.Store)
	return c
}

// RunCycle processes at most one input frame. It returns whether a valid
// frame was handled this cycle.
func (c *Controller) RunCycle() bool {
	frame, stamp, ok := c.sync.Next()
	c.led.set(c.sync.Synced())
	if !ok {
		return false
	}

	channels := frame.Channels()

	// Failsafe is mirrored out verbatim; downstream hardware decides what
	// to do with it.
	if frame.Failsafe() {
		c.cfg.FailsafeOut.High()
	} else {
		c.cfg.FailsafeOut.Low()
	}

	if c.engine.Update(c.cfg.Trigger.Get(), channels) {
		c.led.blink(commitBlinks)
	}
	if c.engine.Calibrating() {
		// No commands reach the motors or servos during a session.
		return true
	}

	c.sched.Emit(stamp, mix.Mix(channels, c.engine.Ranges()))
	return true
}

// Run loops forever.
func (c *Controller) Run() {
	for {
		c.RunCycle()
	}
}

// Ranges exposes the active calibration, for diagnostics.
func (c *Controller) Ranges() calib.Ranges {
	return c.engine.Ranges()
}
