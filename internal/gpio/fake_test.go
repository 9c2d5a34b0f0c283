package gpio

import (
	"errors"
	"testing"
)

var _ Reader = (*FakeReader)(nil)
var _ Reader = (*RealReader)(nil)

func TestFakeReaderReplaysScript(t *testing.T) {
	script := []Sample{{B1: true}, {B2: true}, {B1: true, B2: true}}
	f := NewFakeReader(script)

	// The last sample repeats once the script is exhausted
	want := append(script, Sample{B1: true, B2: true}, Sample{B1: true, B2: true})
	for i, w := range want {
		b1, b2, err := f.Read()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if b1 != w.B1 || b2 != w.B2 {
			t.Errorf("read %d: expected (%v, %v), got (%v, %v)", i, w.B1, w.B2, b1, b2)
		}
	}
	if f.Consumed() != len(script)-1 {
		t.Errorf("expected position capped at %d, got %d", len(script)-1, f.Consumed())
	}
	if f.Reads() != len(want) {
		t.Errorf("expected %d reads, got %d", len(want), f.Reads())
	}
}

func TestFakeReaderErrors(t *testing.T) {
	if _, _, err := NewFakeReader(nil).Read(); err == nil {
		t.Error("expected error with an empty script")
	}

	f := NewFakeReader([]Sample{{B1: true}})
	f.ReadError = errors.New("line busy")
	if _, _, err := f.Read(); err != f.ReadError {
		t.Errorf("expected scripted error, got %v", err)
	}
	if f.Reads() != 1 {
		t.Errorf("failed reads must be counted, got %d", f.Reads())
	}
}

func TestFakeReaderCloseAndReset(t *testing.T) {
	f := NewFakeReader([]Sample{{B1: true}, {B2: true}})
	f.Read()
	f.Close()
	if !f.Closed {
		t.Fatal("expected closed")
	}

	f.Reset()
	if f.Closed {
		t.Error("reset must reopen the reader")
	}
	if b1, b2, _ := f.Read(); !b1 || b2 {
		t.Errorf("after reset: expected first sample, got (%v, %v)", b1, b2)
	}
}

func TestHold(t *testing.T) {
	got := Hold(Sample{B2: true}, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	for i, s := range got {
		if s.B1 || !s.B2 {
			t.Errorf("sample %d: got %+v", i, s)
		}
	}
}

func TestPressedIsActiveLow(t *testing.T) {
	if !pressed(0) {
		t.Error("raw 0 must read as pressed")
	}
	if pressed(1) {
		t.Error("raw 1 must read as released")
	}
}
