package adc

import (
	"sync"
	"time"
)

// Simulated intensity levels, either side of the detection threshold.
const (
	SimLit  uint16 = 3600
	SimDark uint16 = 400
)

// SimSource synthesizes a gate signal for running without hardware.
// The beam is lit and is shadowed for the last Shadow of every Lap.
type SimSource struct {
	mu     sync.Mutex
	lap    time.Duration
	shadow time.Duration
	period time.Duration
	start  time.Time
	closed bool

	now   func() time.Time
	sleep func(time.Duration)
}

// NewSimSource creates a simulated gate sampled once per period.
func NewSimSource(lap, shadow, period time.Duration) *SimSource {
	return newSimSource(lap, shadow, period, time.Now, time.Sleep)
}

func newSimSource(lap, shadow, period time.Duration, now func() time.Time, sleep func(time.Duration)) *SimSource {
	if shadow >= lap {
		shadow = lap / 2
	}
	return &SimSource{
		lap:    lap,
		shadow: shadow,
		period: period,
		start:  now(),
		now:    now,
		sleep:  sleep,
	}
}

// ReadSamples fills dst at the sampling period.
func (s *SimSource) ReadSamples(dst []uint16) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	for i := range dst {
		s.sleep(s.period)
		dst[i] = s.level(s.now().Sub(s.start))
	}
	return len(dst), nil
}

func (s *SimSource) level(elapsed time.Duration) uint16 {
	if s.lap <= 0 || elapsed%s.lap < s.lap-s.shadow {
		return SimLit
	}
	return SimDark
}

// Close stops the simulation.
func (s *SimSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
