//go:build !linux

package gpio

import (
	"errors"
	"fmt"
)

// errNoCdev reports that the GPIO character device only exists on Linux.
var errNoCdev = errors.New("gpio: character device requires Linux")

// RealReader is a placeholder so the timer builds off-target.
type RealReader struct{}

// NewRealReader always fails off Linux; use -source fake and a FakeReader for development.
func NewRealReader(chipName string, pinB1, pinB2 int) (*RealReader, error) {
	return nil, fmt.Errorf("open %s lines %d,%d: %w", chipName, pinB1, pinB2, errNoCdev)
}

// Read always fails.
func (r *RealReader) Read() (bool, bool, error) {
	return false, false, errNoCdev
}

// Close does nothing.
func (r *RealReader) Close() error {
	return nil
}
