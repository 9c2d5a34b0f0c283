// Package display provides the text-row display sink with hardware abstraction.
// The panel implementation draws text with tinyfont onto any drivers.Displayer.
// The fake implementation allows testing without hardware.
package display

import (
	"errors"
	"fmt"
)

// Rows is the number of addressable text rows (8 px each on a 128x64 panel).
const Rows = 8

// ErrRow is returned for a row index outside [0, Rows).
var ErrRow = errors.New("display: row out of range")

// Sink accepts positioned text rows.
type Sink interface {
	// Clear blanks every row.
	Clear() error

	// WriteLine replaces the full content of row with text.
	WriteLine(text string, row int) error
}

func checkRow(row int) error {
	if row < 0 || row >= Rows {
		return fmt.Errorf("%w: %d", ErrRow, row)
	}
	return nil
}
