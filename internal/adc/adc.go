// Package adc provides the photogate intensity sample source with hardware abstraction.
// Real sources read a serial-attached converter or a Modbus analog module.
// The fake source allows testing without hardware.
package adc

import (
	"encoding/binary"
	"errors"
)

// RecordSize is the width of one sample record on the serial link.
const RecordSize = 2

// DefaultBatch is the number of samples requested per read.
const DefaultBatch = 20

// ErrClosed is returned by reads after Close.
var ErrClosed = errors.New("adc: source closed")

// Source delivers intensity samples in arrival order.
type Source interface {
	// ReadSamples fills dst with up to len(dst) samples and returns how
	// many were written. A read that times out without data returns 0, nil.
	ReadSamples(dst []uint16) (int, error)

	// Close releases the underlying device.
	Close() error
}

// DecodeRecords decodes little-endian fixed-width records from raw into dst.
// It returns the number of samples decoded; a trailing partial record is ignored.
func DecodeRecords(dst []uint16, raw []byte) int {
	n := len(raw) / RecordSize
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = binary.LittleEndian.Uint16(raw[i*RecordSize:])
	}
	return n
}
