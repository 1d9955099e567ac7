// Package sbus handles the receiver side of the system: aligning to the
// serial SBUS stream and decoding channel values out of its fixed frames.
package sbus

// Frame layout: header 0x0F, 22 bytes of packed channel data, a flags
// byte and a 0x00 end byte. Sixteen 11-bit channel slots are packed
// little-endian across bytes 1-22; only the first four are used here.
const (
	FrameSize   = 25
	HeaderByte  = 0x0F
	TrailerByte = 0x00

	// NumChannels is the number of proportional channels decoded from a
	// frame. The remaining slots stay packed and untouched.
	NumChannels = 4

	// ChannelMax is the largest raw value an 11-bit channel can carry.
	ChannelMax = 2047

	channelBits  = 11
	channelMask  = 0x07FF
	flagsByte    = 23
	failsafeMask = 0x08
)

// Logical channel assignment on the transmitter.
const (
	ChRudder = iota
	ChThrottle
	ChAileron
	ChElevator
)

// Frame is one raw 25-byte SBUS frame.
type Frame [FrameSize]byte

// Valid reports whether the frame carries the expected header and end
// bytes. Channel extraction must only be attempted on valid frames.
func (f *Frame) Valid() bool {
	return f[0] == HeaderByte && f[FrameSize-1] == TrailerByte
}

// Channels unpacks the first NumChannels 11-bit values from the packed
// span. Channel bits are merged least-significant-first across byte
// boundaries.
func (f *Frame) Channels() [NumChannels]uint16 {
	bitstream := f[1:flagsByte]

	var channels [NumChannels]uint16
	var bitsMerged uint
	var readValue uint32
	var readByteIndex int

	for n := 0; n < NumChannels; n++ {
		for bitsMerged < channelBits {
			readValue |= uint32(bitstream[readByteIndex]) << bitsMerged
			readByteIndex++
			bitsMerged += 8
		}
		channels[n] = uint16(readValue & channelMask)
		readValue >>= channelBits
		bitsMerged -= channelBits
	}
	return channels
}

// Failsafe reports the receiver's failsafe flag. It is passed through to
// downstream hardware untouched; the mixer never acts on it.
func (f *Frame) Failsafe() bool {
	return f[flagsByte]&failsafeMask != 0
}

// Pack builds a valid frame carrying the given values in the first
// NumChannels slots, the exact inverse of Channels. The remaining slots
// are zero. Used for bench simulation and tests.
func Pack(channels [NumChannels]uint16, failsafe bool) Frame {
	var f Frame
	f[0] = HeaderByte

	var bitBuf uint32
	var bits uint
	idx := 1
	for _, v := range channels {
		bitBuf |= uint32(v&channelMask) << bits
		bits += channelBits
		for bits >= 8 {
			f[idx] = byte(bitBuf)
			bitBuf >>= 8
			bits -= 8
			idx++
		}
	}
	if bits > 0 {
		f[idx] = byte(bitBuf)
	}
	if failsafe {
		f[flagsByte] = failsafeMask
	}
	return f
}
