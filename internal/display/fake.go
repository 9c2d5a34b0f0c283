package display

import "sync"

// FakeSink records the rows written to it for test assertions.
type FakeSink struct {
	mu sync.Mutex

	// Lines holds the current content of each row.
	Lines [Rows]string

	// Writes records every WriteLine call in order.
	Writes []Write

	// Clears counts Clear calls.
	Clears int

	// WriteError, if set, will be returned by WriteLine.
	WriteError error
}

// Write is a single recorded WriteLine call.
type Write struct {
	Row  int
	Text string
}

// NewFakeSink creates a FakeSink for testing.
func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

// Clear blanks every row.
func (f *FakeSink) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lines = [Rows]string{}
	f.Clears++
	return nil
}

// WriteLine records the row.
func (f *FakeSink) WriteLine(text string, row int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteError != nil {
		return f.WriteError
	}
	if err := checkRow(row); err != nil {
		return err
	}
	f.Lines[row] = text
	f.Writes = append(f.Writes, Write{Row: row, Text: text})
	return nil
}

// Line returns the current content of row.
func (f *FakeSink) Line(row int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Lines[row]
}

// WriteCount returns the number of recorded writes.
func (f *FakeSink) WriteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Writes)
}

// Reset forgets everything recorded.
func (f *FakeSink) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lines = [Rows]string{}
	f.Writes = nil
	f.Clears = 0
	f.WriteError = nil
}
