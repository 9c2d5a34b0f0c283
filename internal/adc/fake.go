package adc

import (
	"errors"
	"sync"
)

// FakeSource is a test double that returns scripted sample batches.
type FakeSource struct {
	mu sync.Mutex

	// Batches contains scripted reads. Each call to ReadSamples consumes
	// the next batch; an exhausted script reads as a timeout.
	Batches [][]uint16

	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by ReadSamples.
	ReadError error

	done chan struct{}
}

// NewFakeSource creates a FakeSource with the given batches.
func NewFakeSource(batches [][]uint16) *FakeSource {
	f := &FakeSource{Batches: batches, done: make(chan struct{})}
	if len(batches) == 0 {
		close(f.done)
	}
	return f
}

// ReadSamples copies the next batch into dst.
func (f *FakeSource) ReadSamples(dst []uint16) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Closed {
		return 0, ErrClosed
	}
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if f.index >= len(f.Batches) {
		return 0, nil
	}

	batch := f.Batches[f.index]
	if len(batch) > len(dst) {
		return 0, errors.New("fake batch larger than buffer")
	}
	f.index++
	if f.index == len(f.Batches) {
		close(f.done)
	}
	return copy(dst, batch), nil
}

// Done is closed once every scripted batch has been read.
func (f *FakeSource) Done() <-chan struct{} {
	return f.done
}

// Close marks the source as closed.
func (f *FakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
