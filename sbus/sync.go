package sbus

import (
	"github.com/AndreyRakhmanov/AeroSBUSMixer/clock"
)

// ByteSource is the byte-level surface of the receiver UART. ReadByte
// returns an error when no byte is buffered; it never blocks.
type ByteSource interface {
	ReadByte() (byte, error)
	Buffered() int
}

// SyncProbeWindow is how long the input must stay quiet before the stream
// is considered aligned on an inter-frame gap.
const SyncProbeWindow clock.Micros = 100

// Synchronizer aligns to frame boundaries by hunting for a quiet gap in
// the byte stream, then reads exactly one frame per cycle. Any framing
// upset drops it back to hunting; recovery is silent and automatic.
type Synchronizer struct {
	src    ByteSource
	clk    clock.Clock
	synced bool
}

func NewSynchronizer(src ByteSource, clk clock.Clock) *Synchronizer {
	return &Synchronizer{src: src, clk: clk}
}

// Synced reports whether the stream is currently aligned. The status
// indicator mirrors this.
func (s *Synchronizer) Synced() bool {
	return s.synced
}

// Next runs one receive cycle. While unsynchronized it probes for a quiet
// gap and returns not-ready. Once synchronized it blocks until a full
// frame is in, validates it, and returns it with the timestamp at which
// the last byte landed. A byte already pending at the top of the cycle
// means the previous frame overran; the cycle desynchronizes instead of
// risking a partial read.
func (s *Synchronizer) Next() (Frame, clock.Micros, bool) {
	var frame Frame

	if !s.synced {
		s.acquire()
		return frame, 0, false
	}

	if s.src.Buffered() > 0 {
		s.desync()
		return frame, 0, false
	}

	for i := 0; i < FrameSize; i++ {
		frame[i] = s.readByte()
	}
	stamp := s.clk.Now()

	if !frame.Valid() {
		s.desync()
		return frame, 0, false
	}
	return frame, stamp, true
}

// acquire attempts to declare synchronization: the buffer must be empty
// now and stay empty through the probe window.
func (s *Synchronizer) acquire() {
	if s.src.Buffered() > 0 {
		s.drain()
		return
	}
	clock.Sleep(s.clk, SyncProbeWindow)
	if s.src.Buffered() > 0 {
		s.drain()
		return
	}
	s.synced = true
}

func (s *Synchronizer) desync() {
	s.synced = false
	s.drain()
}

func (s *Synchronizer) drain() {
	for s.src.Buffered() > 0 {
		s.src.ReadByte()
	}
}

// readByte blocks until the source yields a byte.
func (s *Synchronizer) readByte() byte {
	for {
		b, err := s.src.ReadByte()
		if err == nil {
			return b
		}
	}
}
