package adc

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// SerialConfig holds serial port configuration.
type SerialConfig struct {
	// Device path (e.g., "/dev/ttyUSB0")
	Device string

	// Baud rate of the converter link
	Baud int

	// ReadTimeout bounds a single read; 0 blocks
	ReadTimeout time.Duration
}

// SerialSource reads sample records streamed by a serial-attached converter.
type SerialSource struct {
	port     io.ReadCloser
	buf      []byte
	carry    byte
	hasCarry bool
}

// OpenSerial opens the serial device and wraps it as a Source.
func OpenSerial(cfg SerialConfig) (*SerialSource, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
	}
	return NewSerialSource(port), nil
}

// NewSerialSource wraps an already opened port.
func NewSerialSource(port io.ReadCloser) *SerialSource {
	return &SerialSource{port: port}
}

// ReadSamples performs one port read and decodes the complete records in it.
// A byte left over from a split record is kept for the next read.
func (s *SerialSource) ReadSamples(dst []uint16) (int, error) {
	if s.port == nil {
		return 0, ErrClosed
	}
	size := len(dst) * RecordSize
	if size == 0 {
		return 0, nil
	}
	if len(s.buf) != size {
		s.buf = make([]byte, size)
	}

	off := 0
	if s.hasCarry {
		s.buf[0] = s.carry
		off = 1
	}

	n, err := s.port.Read(s.buf[off:])
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read serial: %w", err)
	}
	// Timed out reads surface as EOF with no data

	total := off + n
	count := DecodeRecords(dst, s.buf[:total])
	s.hasCarry = total%RecordSize == 1
	if s.hasCarry {
		s.carry = s.buf[total-1]
	}
	return count, nil
}

// Close closes the serial port.
func (s *SerialSource) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}
