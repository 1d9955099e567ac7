//go:build linux

// Package linux implements the hardware surfaces on a Linux host: the
// SBUS UART through go.bug.st/serial, GPIO lines through the character
// device, a monotonic microsecond clock and a file-backed calibration
// store.
package linux

import (
	"errors"

	"go.bug.st/serial"
)

// ErrNoData is returned by Port.ReadByte when nothing is buffered.
var ErrNoData = errors.New("serial: no data buffered")

// SBUS line coding. The physical layer is inverted externally; the port
// itself runs plain 100000 8E2.
const (
	sbusBaud     = 100000
	portChanSize = 512
)

// Port adapts a serial port to sbus.ByteSource. A reader goroutine keeps
// draining the OS buffer into a channel so Buffered reflects bytes that
// have actually arrived.
type Port struct {
	port serial.Port
	buf  chan byte
}

// OpenPort opens the SBUS input device.
func OpenPort(device string) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: sbusBaud,
		DataBits: 8,
		Parity:   serial.EvenParity,
		StopBits: serial.TwoStopBits,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, err
	}
	p := &Port{port: port, buf: make(chan byte, portChanSize)}
	go p.reader()
	return p, nil
}

func (p *Port) reader() {
	chunk := make([]byte, 64)
	for {
		n, err := p.port.Read(chunk)
		if err != nil {
			return
		}
		for _, b := range chunk[:n] {
			p.buf <- b
		}
	}
}

func (p *Port) ReadByte() (byte, error) {
	select {
	case b := <-p.buf:
		return b, nil
	default:
		return 0, ErrNoData
	}
}

func (p *Port) Buffered() int {
	return len(p.buf)
}

func (p *Port) Close() error {
	return p.port.Close()
}
