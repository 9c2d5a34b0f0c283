package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// TextSink prints row updates to a writer, one line per write.
// Used as the console display when no panel is attached.
type TextSink struct {
	mu    sync.Mutex
	w     io.Writer
	lines [Rows]string
}

// NewTextSink creates a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Clear blanks every row.
func (s *TextSink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = [Rows]string{}
	_, err := fmt.Fprintln(s.w, "display: clear")
	return err
}

// WriteLine replaces row and prints it.
func (s *TextSink) WriteLine(text string, row int) error {
	if err := checkRow(row); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[row] = text
	_, err := fmt.Fprintf(s.w, "display[%d]: %s\n", row, strings.TrimRight(text, " "))
	return err
}

// Lines returns the current content of every row.
func (s *TextSink) Lines() [Rows]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}
