package logic

import "sync"

// Engine turns consecutive pass timestamps into lap durations and keeps
// the session statistics. Safe for concurrent use: the consumer loop
// records laps while the button loop resets and the screen reads.
type Engine struct {
	mu         sync.RWMutex
	last       uint64 // last boundary timestamp, 0 = none
	started    bool
	current    uint32
	hasCurrent bool
	history    History
	best       uint32
}

// NewEngine creates an engine with an empty session and the best time at BestSentinel.
func NewEngine() *Engine {
	return &Engine{best: BestSentinel}
}

// Record consumes one pass timestamp. It returns the completed lap, or
// false when the timestamp only opened the session.
func (e *Engine) Record(ts uint64) (Lap, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started || ts < e.last {
		// First boundary since reset, or a clock that went backwards
		e.last = ts
		e.started = true
		return Lap{}, false
	}

	millis := uint32((ts - e.last) / 1000)
	e.current = millis
	e.hasCurrent = true
	e.history.Insert(millis)

	lap := Lap{Millis: millis, Timestamp: ts}
	if millis < e.best {
		e.best = millis
		lap.NewBest = true
	}
	e.last = ts
	return lap, true
}

// Reset clears the boundary, the current lap and the history.
// The best time is kept across resets.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.last = 0
	e.started = false
	e.current = 0
	e.hasCurrent = false
	e.history.Clear()
	e.mu.Unlock()
}

// Current returns the last lap duration, false if none since reset.
func (e *Engine) Current() (uint32, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current, e.hasCurrent
}

// Best returns the lowest lap ever recorded, or BestSentinel.
func (e *Engine) Best() uint32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.best
}

// Recent returns up to k laps, most recent first.
func (e *Engine) Recent(k int) []uint32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.Recent(k)
}

// Count returns the number of valid laps in the history.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.Len()
}

// Snapshot returns a consistent copy of the session.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		Current:    e.current,
		HasCurrent: e.hasCurrent,
		Best:       e.best,
		Recent:     e.history.Recent(RecentLaps),
		Count:      e.history.Len(),
		Overflow:   e.history.Overflowed(),
	}
}
