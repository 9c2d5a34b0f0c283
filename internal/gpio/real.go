//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads both buttons with one request on the Linux GPIO
// character device, so a poll sees the two levels at the same instant.
type RealReader struct {
	chip  *gpiocdev.Chip
	lines *gpiocdev.Lines
	vals  []int
}

// NewRealReader requests both button lines as inputs with pull-up.
func NewRealReader(chipName string, pinB1, pinB2 int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	// Buttons short the line to ground when pressed.
	lines, err := chip.RequestLines([]int{pinB1, pinB2}, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button lines %d,%d: %w", pinB1, pinB2, err)
	}

	return &RealReader{
		chip:  chip,
		lines: lines,
		vals:  make([]int, 2),
	}, nil
}

// Read returns whether each button is pressed.
func (r *RealReader) Read() (bool, bool, error) {
	if err := r.lines.Values(r.vals); err != nil {
		return false, false, fmt.Errorf("read button lines: %w", err)
	}
	return pressed(r.vals[0]), pressed(r.vals[1]), nil
}

// Close releases the lines and the chip.
func (r *RealReader) Close() error {
	var errs []error
	if r.lines != nil {
		if err := r.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close lines: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	return errors.Join(errs...)
}
