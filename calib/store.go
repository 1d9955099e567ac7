package calib

import (
	"github.com/AndreyRakhmanov/AeroSBUSMixer/sbus"
)

// Store is byte-addressed persistent storage, the surface of a small
// EEPROM. Reads and writes are assumed to succeed; there is no corruption
// detection at this layer.
type Store interface {
	ReadByte(addr int) byte
	WriteByte(addr int, value byte)
}

// Store image: nine addressable slots, of which eight hold the channel
// bounds as raw/10 (so raw 0-2550 in steps of 10). Slot layout is
// ch0 min, ch0 max, ..., ch3 max; the final slot is reserved.
const (
	StoreSlots = 9

	storeScale   = 10
	reservedSlot = 8

	// Factory defaults in stored units: raw min 10, raw max 2000.
	DefaultMinStored = 1
	DefaultMaxStored = 200
)

// Load decodes the persisted ranges from the store.
func Load(st Store) Ranges {
	var rs Ranges
	for ch := range rs {
		rs[ch].Min = uint16(st.ReadByte(2*ch)) * storeScale
		rs[ch].Max = uint16(st.ReadByte(2*ch+1)) * storeScale
	}
	return rs
}

// Save encodes the ranges into the store. Bounds are truncated to the
// stored granularity of 10 raw units.
func Save(st Store, rs Ranges) {
	for ch := range rs {
		st.WriteByte(2*ch, byte(rs[ch].Min/storeScale))
		st.WriteByte(2*ch+1, byte(rs[ch].Max/storeScale))
	}
}

// Format writes the factory default image. Used on first run and by the
// boot-time reset gesture.
func Format(st Store) {
	for ch := 0; ch < sbus.NumChannels; ch++ {
		st.WriteByte(2*ch, DefaultMinStored)
		st.WriteByte(2*ch+1, DefaultMaxStored)
	}
	st.WriteByte(reservedSlot, 0)
}
