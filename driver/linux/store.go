//go:build linux

package linux

import (
	"os"

	"github.com/AndreyRakhmanov/AeroSBUSMixer/calib"
)

// FileStore persists the calibration slots to a small binary file,
// standing in for the EEPROM of the embedded build. Every slot write is
// flushed; the image is nine bytes, losing one is not worth buffering.
type FileStore struct {
	path  string
	cells [calib.StoreSlots]byte
}

// OpenStore reads the store file, formatting a fresh image with factory
// defaults if the file is missing or truncated.
func OpenStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	switch {
	case err == nil && len(data) >= calib.StoreSlots:
		copy(s.cells[:], data)
	case err == nil || os.IsNotExist(err):
		calib.Format(s)
	default:
		return nil, err
	}
	return s, nil
}

func (s *FileStore) ReadByte(addr int) byte {
	return s.cells[addr]
}

func (s *FileStore) WriteByte(addr int, value byte) {
	s.cells[addr] = value
	os.WriteFile(s.path, s.cells[:], 0o644)
}
