package display

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	colorFG = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorBG = color.RGBA{A: 0xff}
)

// PanelSink draws text rows onto a pixel display.
type PanelSink struct {
	mu   sync.Mutex
	d    drivers.Displayer
	font tinyfont.Fonter
}

// NewPanelSink creates a sink drawing with the proggy tiny font.
func NewPanelSink(d drivers.Displayer) *PanelSink {
	return &PanelSink{d: d, font: &proggy.TinySZ8pt7b}
}

// Clear blanks the whole panel and presents it.
func (p *PanelSink) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, h := p.d.Size()
	p.fill(0, 0, w, h)
	return p.d.Display()
}

// WriteLine blanks the row band, draws text on its baseline and presents the panel.
func (p *PanelSink) WriteLine(text string, row int) error {
	if err := checkRow(row); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	w, _ := p.d.Size()
	top := int16(row * RowHeight)
	p.fill(0, top, w, top+RowHeight)
	tinyfont.WriteLine(p.d, p.font, 0, top+RowHeight-1, text, colorFG)
	return p.d.Display()
}

func (p *PanelSink) fill(x0, y0, x1, y1 int16) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p.d.SetPixel(x, y, colorBG)
		}
	}
}
