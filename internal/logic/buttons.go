package logic

import "time"

type buttonPhase int

const (
	phaseIdle  buttonPhase = iota // waiting for a press
	phaseHeld                     // press reported, waiting for release
	phaseGuard                    // released, ignoring bounce
)

// ButtonMonitor turns polled button levels into one press per
// press-and-release cycle.
type ButtonMonitor struct {
	guard      time.Duration
	phase      buttonPhase
	guardUntil time.Time
}

// NewButtonMonitor creates a monitor that ignores input for guard after each release.
func NewButtonMonitor(guard time.Duration) *ButtonMonitor {
	return &ButtonMonitor{guard: guard}
}

// Process takes one poll of both buttons and returns the button that
// was pressed, or ButtonNone. When both are down in the same poll the
// reset button wins and only one press is reported.
func (m *ButtonMonitor) Process(in ButtonInput) Button {
	switch m.phase {
	case phaseIdle:
		if !in.B1 && !in.B2 {
			return ButtonNone
		}
		m.phase = phaseHeld
		if in.B2 {
			return ButtonReset
		}
		return ButtonMode

	case phaseHeld:
		if !in.B1 && !in.B2 {
			m.phase = phaseGuard
			m.guardUntil = in.Time.Add(m.guard)
		}
		return ButtonNone

	case phaseGuard:
		if !in.Time.Before(m.guardUntil) {
			m.phase = phaseIdle
		}
		return ButtonNone
	}
	return ButtonNone
}

// Waiting reports whether the monitor accepts a new press.
func (m *ButtonMonitor) Waiting() bool {
	return m.phase == phaseIdle
}
