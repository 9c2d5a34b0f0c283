// Package gpio provides button input reading with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Reader reads the two timer buttons.
type Reader interface {
	// Read returns whether each button is pressed.
	// The buttons are pulled up and active low: raw 0 = pressed.
	// Returns (b1Pressed, b2Pressed, error).
	Read() (bool, bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Default line offsets on gpiochip0.
const (
	DefaultChip  = "gpiochip0"
	DefaultPinB1 = 9  // screen button
	DefaultPinB2 = 10 // reset button
)

// pressed converts a raw level of a pulled-up, active-low input.
func pressed(raw int) bool {
	return raw == 0
}
