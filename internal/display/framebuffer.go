package display

import (
	"image/color"
	"strings"
	"sync"
)

// Panel geometry of the SSD1306 module the timer was built around.
const (
	PanelWidth  = 128
	PanelHeight = 64
	RowHeight   = PanelHeight / Rows
)

// Framebuffer is an in-memory monochrome panel implementing drivers.Displayer.
// Pixels are packed in SSD1306 page order: one byte covers 8 vertical pixels.
type Framebuffer struct {
	mu      sync.Mutex
	buf     [PanelWidth * PanelHeight / 8]byte
	flushes int

	// OnDisplay, if set, is called with the frame after every Display.
	OnDisplay func(fb *Framebuffer)
}

// NewFramebuffer creates a blank 128x64 framebuffer.
func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

// Size returns the panel size in pixels.
func (f *Framebuffer) Size() (x, y int16) {
	return PanelWidth, PanelHeight
}

// SetPixel lights the pixel for any non-black color. Out of range is ignored.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= PanelWidth || y < 0 || y >= PanelHeight {
		return
	}
	idx := int(x) + int(y/8)*PanelWidth
	bit := byte(1) << uint(y%8)

	f.mu.Lock()
	if c.R != 0 || c.G != 0 || c.B != 0 {
		f.buf[idx] |= bit
	} else {
		f.buf[idx] &^= bit
	}
	f.mu.Unlock()
}

// Pixel reports whether the pixel at (x, y) is lit.
func (f *Framebuffer) Pixel(x, y int16) bool {
	if x < 0 || x >= PanelWidth || y < 0 || y >= PanelHeight {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf[int(x)+int(y/8)*PanelWidth]&(1<<uint(y%8)) != 0
}

// Display marks the frame as presented.
func (f *Framebuffer) Display() error {
	f.mu.Lock()
	f.flushes++
	hook := f.OnDisplay
	f.mu.Unlock()
	if hook != nil {
		hook(f)
	}
	return nil
}

// Flushes returns the number of Display calls.
func (f *Framebuffer) Flushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}

// Pages returns a copy of the packed frame, ready for an SSD1306 page write.
func (f *Framebuffer) Pages() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]byte, len(f.buf))
	copy(out, f.buf[:])
	return out
}

// Lit counts lit pixels in the rectangle [x0,x1) x [y0,y1).
func (f *Framebuffer) Lit(x0, y0, x1, y1 int16) int {
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if f.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

// String renders the frame as ASCII art, '#' for lit pixels.
func (f *Framebuffer) String() string {
	var b strings.Builder
	b.Grow((PanelWidth + 1) * PanelHeight)
	for y := int16(0); y < PanelHeight; y++ {
		for x := int16(0); x < PanelWidth; x++ {
			if f.Pixel(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
