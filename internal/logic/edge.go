package logic

// EdgeMachine is the value state of the edge detector.
type EdgeMachine struct {
	State EdgeState
	// Candidate is the time the current shadow began; valid only in EdgeFallen.
	Candidate uint64
}

// StepEdge advances the machine by one sample taken at now (microseconds).
// It returns the new machine and, when a pass is confirmed, its timestamp.
func StepEdge(m EdgeMachine, sample uint16, now uint64) (EdgeMachine, uint64, bool) {
	switch m.State {
	case EdgeWaiting:
		if sample > Threshold {
			m.State = EdgeArmed
		}
		return m, 0, false

	case EdgeArmed:
		if sample < Threshold {
			m.State = EdgeFallen
			m.Candidate = now
		}
		return m, 0, false

	case EdgeFallen:
		if sample > Threshold {
			// Brief dip, re-arm and drop the candidate
			m.State = EdgeArmed
			m.Candidate = 0
			return m, 0, false
		}
		return settleEdge(m, now)
	}
	return m, 0, false
}

// settleEdge confirms the candidate once the shadow lasted longer than SettleMicros.
func settleEdge(m EdgeMachine, now uint64) (EdgeMachine, uint64, bool) {
	if m.State != EdgeFallen || now < m.Candidate || now-m.Candidate <= SettleMicros {
		return m, 0, false
	}
	ts := m.Candidate
	return EdgeMachine{State: EdgeWaiting}, ts, true
}

// EdgeDetector turns intensity samples into confirmed pass timestamps.
type EdgeDetector struct {
	m      EdgeMachine
	passes int
}

// NewEdgeDetector creates a detector in the Waiting state.
func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{}
}

// Process feeds one sample taken at now. It returns the pass timestamp
// when this sample confirms a pass.
func (d *EdgeDetector) Process(sample uint16, now uint64) (uint64, bool) {
	var ts uint64
	var ok bool
	d.m, ts, ok = StepEdge(d.m, sample, now)
	if ok {
		d.passes++
	}
	return ts, ok
}

// Check runs the settle check without a new sample. The sampler calls it
// after every batch so a pass is confirmed even when no samples arrive.
func (d *EdgeDetector) Check(now uint64) (uint64, bool) {
	var ts uint64
	var ok bool
	d.m, ts, ok = settleEdge(d.m, now)
	if ok {
		d.passes++
	}
	return ts, ok
}

// State returns the current detector state.
func (d *EdgeDetector) State() EdgeState {
	return d.m.State
}

// Passes returns the number of confirmed passes since creation.
func (d *EdgeDetector) Passes() int {
	return d.passes
}

// NewEdgeChannel creates the single-slot handoff between the edge
// detector and the lap engine. A full slot blocks the sender.
func NewEdgeChannel() chan uint64 {
	return make(chan uint64, 1)
}
