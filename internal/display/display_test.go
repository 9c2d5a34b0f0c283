package display

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Framebuffer)(nil)

func TestFakeSinkRecords(t *testing.T) {
	f := NewFakeSink()
	if err := f.WriteLine("hello", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Line(3) != "hello" {
		t.Errorf("row 3: got %q", f.Line(3))
	}
	if f.WriteCount() != 1 {
		t.Errorf("expected 1 write, got %d", f.WriteCount())
	}

	f.Clear()
	if f.Line(3) != "" {
		t.Errorf("row 3 after clear: got %q", f.Line(3))
	}
	if f.Clears != 1 {
		t.Errorf("expected 1 clear, got %d", f.Clears)
	}
}

func TestFakeSinkWriteError(t *testing.T) {
	f := NewFakeSink()
	f.WriteError = errors.New("simulated error")
	if err := f.WriteLine("x", 0); err == nil {
		t.Error("expected error to be returned")
	}
}

func TestRowRange(t *testing.T) {
	sinks := map[string]Sink{
		"fake":  NewFakeSink(),
		"text":  NewTextSink(&bytes.Buffer{}),
		"panel": NewPanelSink(NewFramebuffer()),
	}
	for name, s := range sinks {
		t.Run(name, func(t *testing.T) {
			for _, row := range []int{-1, Rows, 100} {
				err := s.WriteLine("x", row)
				if !errors.Is(err, ErrRow) {
					t.Errorf("row %d: expected ErrRow, got %v", row, err)
				}
			}
			if err := s.WriteLine("x", Rows-1); err != nil {
				t.Errorf("last row: unexpected error %v", err)
			}
		})
	}
}

func TestTextSinkOutput(t *testing.T) {
	var buf bytes.Buffer
	s := NewTextSink(&buf)
	s.WriteLine("Time: 1.234  ", 2)
	s.Clear()

	out := buf.String()
	if !strings.Contains(out, "display[2]: Time: 1.234\n") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "display: clear") {
		t.Errorf("missing clear line: %q", out)
	}
	if s.Lines()[2] != "" {
		t.Errorf("row 2 after clear: got %q", s.Lines()[2])
	}
}

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer()
	on := color.RGBA{R: 1, A: 0xff}

	fb.SetPixel(5, 9, on)
	if !fb.Pixel(5, 9) {
		t.Error("expected pixel lit")
	}
	// Page order: column 5, page 1, bit 1
	if fb.Pages()[PanelWidth+5] != 0x02 {
		t.Errorf("unexpected page byte: %#x", fb.Pages()[PanelWidth+5])
	}

	fb.SetPixel(5, 9, color.RGBA{A: 0xff})
	if fb.Pixel(5, 9) {
		t.Error("expected pixel cleared")
	}

	// Out of range is ignored
	fb.SetPixel(-1, 0, on)
	fb.SetPixel(PanelWidth, 0, on)
	fb.SetPixel(0, PanelHeight, on)
	if n := fb.Lit(0, 0, PanelWidth, PanelHeight); n != 0 {
		t.Errorf("expected blank frame, got %d lit", n)
	}
}

func TestFramebufferDisplayHook(t *testing.T) {
	fb := NewFramebuffer()
	calls := 0
	fb.OnDisplay = func(*Framebuffer) { calls++ }
	fb.Display()
	fb.Display()
	if calls != 2 || fb.Flushes() != 2 {
		t.Errorf("expected 2 flushes, got hook=%d flushes=%d", calls, fb.Flushes())
	}
}

func TestFramebufferString(t *testing.T) {
	fb := NewFramebuffer()
	fb.SetPixel(0, 0, colorFG)
	lines := strings.Split(strings.TrimRight(fb.String(), "\n"), "\n")
	if len(lines) != PanelHeight {
		t.Fatalf("expected %d lines, got %d", PanelHeight, len(lines))
	}
	if len(lines[0]) != PanelWidth || lines[0][0] != '#' || lines[0][1] != '.' {
		t.Errorf("unexpected first line: %q", lines[0])
	}
}

func TestPanelSinkDrawsInRowBand(t *testing.T) {
	fb := NewFramebuffer()
	p := NewPanelSink(fb)

	if err := p.WriteLine("BEST LAP", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := fb.Lit(0, 0, PanelWidth, PanelHeight); n == 0 {
		t.Fatal("expected text pixels on the panel")
	}
	if n := fb.Lit(0, 3*RowHeight, PanelWidth, PanelHeight); n != 0 {
		t.Errorf("rows below the written row must stay blank, got %d lit", n)
	}
	if fb.Flushes() != 1 {
		t.Errorf("expected 1 flush, got %d", fb.Flushes())
	}
}

func TestPanelSinkReplacesRow(t *testing.T) {
	fb := NewFramebuffer()
	p := NewPanelSink(fb)

	p.WriteLine("WWWWWWWWWWWWWWWW", 4)
	before := fb.Lit(0, 4*RowHeight, PanelWidth, 5*RowHeight)
	p.WriteLine("", 4)
	after := fb.Lit(0, 4*RowHeight, PanelWidth, 5*RowHeight)

	if before == 0 {
		t.Fatal("expected pixels after the first write")
	}
	if after != 0 {
		t.Errorf("empty write must blank the row band, got %d lit", after)
	}
}

func TestPanelSinkClear(t *testing.T) {
	fb := NewFramebuffer()
	p := NewPanelSink(fb)
	p.WriteLine("GluonGP Timer", 0)
	p.WriteLine("Last Lap", 1)

	if err := p.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := fb.Lit(0, 0, PanelWidth, PanelHeight); n != 0 {
		t.Errorf("expected blank panel after clear, got %d lit", n)
	}
}
