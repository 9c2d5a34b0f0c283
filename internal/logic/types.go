// Package logic contains the pure timing core of the lap timer.
// This package has NO external dependencies (no ADC, GPIO, display, OS, or time.Sleep).
// Time is always injectable: edge timestamps are monotonic microseconds,
// button polling takes time.Time parameters.
package logic

import "time"

// Fixed timing constants. They are not configurable at runtime.
const (
	// Threshold is the raw ADC level separating lit from shadowed.
	Threshold = 3000

	// SettleMicros is the minimum dwell below Threshold before a pass is confirmed.
	SettleMicros uint64 = 100000

	// TrackDistance divided by a lap in milliseconds gives the displayed speed.
	TrackDistance = 5476.192

	// HistoryCapacity is the number of laps kept in the circular history.
	HistoryCapacity = 10

	// RecentLaps is how many laps the list screen shows.
	RecentLaps = 5

	// BestSentinel is the best time before any lap was recorded.
	BestSentinel uint32 = 10000
)

// Button poll defaults.
const (
	DefaultButtonPoll  = 10 * time.Millisecond
	DefaultButtonGuard = 100 * time.Millisecond
)

// EdgeState is the state of the photogate edge detector.
type EdgeState int

const (
	EdgeWaiting EdgeState = iota // waiting for the beam to be lit
	EdgeArmed                    // lit, ready to see a shadow
	EdgeFallen                   // shadowed, candidate pass pending
)

func (s EdgeState) String() string {
	switch s {
	case EdgeWaiting:
		return "Waiting"
	case EdgeArmed:
		return "Armed"
	case EdgeFallen:
		return "Fallen"
	}
	return "Unknown"
}

// Mode is the screen currently shown.
type Mode int

const (
	ModeCurrent Mode = iota // time and speed of the last lap
	ModeBest                // best lap
	ModeList                // most recent laps
	ModeStats               // reserved, renders nothing
)

// Next returns the mode shown after a button 1 press.
// Stats is outside the cycle and falls back to Current.
func (m Mode) Next() Mode {
	switch m {
	case ModeCurrent:
		return ModeBest
	case ModeBest:
		return ModeList
	default:
		return ModeCurrent
	}
}

func (m Mode) String() string {
	switch m {
	case ModeCurrent:
		return "Current"
	case ModeBest:
		return "Best"
	case ModeList:
		return "List"
	case ModeStats:
		return "Stats"
	}
	return "Unknown"
}

// Button identifies one of the two physical buttons.
type Button int

const (
	ButtonNone  Button = iota
	ButtonMode         // button 1, cycles screens
	ButtonReset        // button 2, resets the session
)

func (b Button) String() string {
	switch b {
	case ButtonMode:
		return "B1"
	case ButtonReset:
		return "B2"
	}
	return "none"
}

// ButtonInput is a single poll of both buttons (already in logical form).
type ButtonInput struct {
	B1   bool // true = pressed
	B2   bool
	Time time.Time
}

// Lap is a completed lap produced by the engine.
type Lap struct {
	// Millis is the lap duration in whole milliseconds.
	Millis uint32
	// Timestamp is the edge that closed the lap.
	Timestamp uint64
	// NewBest reports whether this lap lowered the best time.
	NewBest bool
}

// Speed returns TrackDistance divided by the duration in milliseconds.
func Speed(millis uint32) float64 {
	return TrackDistance / float64(millis)
}

// Snapshot is a point-in-time view of the session.
// It is a value type, safe to use after the engine lock is released.
type Snapshot struct {
	Current    uint32
	HasCurrent bool
	Best       uint32
	// Recent holds up to RecentLaps laps, most recent first.
	Recent   []uint32
	Count    int
	Overflow bool
}
