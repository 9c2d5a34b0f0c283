// Package screen drives the display: it owns the current mode, reacts to
// button presses and renders the lap data of the engine as text rows.
package screen

import (
	"fmt"
	"log"
	"sync"

	"github.com/gluongp/gluon-timer/internal/display"
	"github.com/gluongp/gluon-timer/internal/logic"
)

// Banner is shown on row 0 after every clear.
const Banner = "GluonGP Timer"

// Row layout.
const (
	RowBanner = 0
	RowTitle  = 1
	RowTime   = 2
	RowSpeed  = 4
	RowList   = 2 // first list row
)

// blankRow overwrites a full row on the panel.
const blankRow = "               "

// Session is the read and reset surface of the lap engine.
type Session interface {
	Snapshot() logic.Snapshot
	Reset()
}

// Controller renders the session for the selected mode. Mode changes,
// resets and lap refreshes come from different goroutines and are
// serialized by mu so a refresh never interleaves with a mode switch.
type Controller struct {
	mu      sync.Mutex
	mode    logic.Mode
	session Session
	sink    display.Sink
}

// New creates a controller showing the Current mode.
func New(session Session, sink display.Sink) *Controller {
	return &Controller{
		mode:    logic.ModeCurrent,
		session: session,
		sink:    sink,
	}
}

// Mode returns the mode currently shown.
func (c *Controller) Mode() logic.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches to m and redraws the whole screen.
func (c *Controller) SetMode(m logic.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
	return c.redraw()
}

// Start clears the display and draws the banner and the current mode.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redraw()
}

// OnButton1Press advances to the next mode and redraws the whole screen.
func (c *Controller) OnButton1Press() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.mode.Next()
	log.Printf("screen: %s -> %s", c.mode, next)
	c.mode = next
	return c.redraw()
}

// OnButton2Press resets the session. The screen is not redrawn; the next
// lap or mode switch shows the new state.
func (c *Controller) OnButton2Press() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Reset()
	log.Printf("screen: session reset")
}

// Refresh re-renders the current mode after a lap update.
func (c *Controller) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.render()
}

func (c *Controller) redraw() error {
	if err := c.sink.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	if err := c.sink.WriteLine(Banner, RowBanner); err != nil {
		return fmt.Errorf("write banner: %w", err)
	}
	return c.render()
}

func (c *Controller) render() error {
	for _, l := range Render(c.mode, c.session.Snapshot()) {
		if err := c.sink.WriteLine(l.Text, l.Row); err != nil {
			return fmt.Errorf("write row %d: %w", l.Row, err)
		}
	}
	return nil
}
