package gpio

import (
	"errors"
	"sync"
)

// Sample is one poll of both buttons, already in logical form (true = pressed).
type Sample struct {
	B1 bool
	B2 bool
}

// Hold returns n copies of s, a button held for n polls.
func Hold(s Sample, n int) []Sample {
	out := make([]Sample, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// FakeReader replays scripted button levels. Once the script runs out the
// last sample is repeated, like a button left where it was.
type FakeReader struct {
	mu sync.Mutex

	Samples []Sample
	pos     int
	reads   int

	Closed    bool
	ReadError error // returned by every Read while set
}

// NewFakeReader creates a FakeReader replaying samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeReader) Read() (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++

	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, false, errors.New("gpio fake: empty script")
	}

	s := f.Samples[f.pos]
	if f.pos < len(f.Samples)-1 {
		f.pos++
	}
	return s.B1, s.B2, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *FakeReader) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = 0
	f.Closed = false
}

// Consumed returns the script position, capped at len(Samples)-1.
func (f *FakeReader) Consumed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos
}

// Reads returns the number of Read calls, failed ones included.
func (f *FakeReader) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}
