package logic

// History is a fixed-capacity circular record of lap durations.
// Not safe for concurrent use; the Engine synchronizes access.
type History struct {
	buf      [HistoryCapacity]uint32
	cursor   int  // next write position
	overflow bool // true once the buffer wrapped at least once
}

// Insert stores a lap at the cursor and advances it, wrapping to 0
// and setting the overflow flag after the last slot.
func (h *History) Insert(millis uint32) {
	h.buf[h.cursor] = millis
	h.cursor++
	if h.cursor == len(h.buf) {
		h.cursor = 0
		h.overflow = true
	}
}

// Len returns the number of valid laps.
func (h *History) Len() int {
	if h.overflow {
		return len(h.buf)
	}
	return h.cursor
}

// Overflowed reports whether older laps have been overwritten at least once.
func (h *History) Overflowed() bool {
	return h.overflow
}

// Recent returns up to k laps, most recent first.
func (h *History) Recent(k int) []uint32 {
	n := h.Len()
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}

	result := make([]uint32, k)
	// Most recent lap sits just behind the cursor
	idx := h.cursor
	for i := 0; i < k; i++ {
		idx = (idx - 1 + len(h.buf)) % len(h.buf)
		result[i] = h.buf[idx]
	}
	return result
}

// Clear forgets all laps.
func (h *History) Clear() {
	h.cursor = 0
	h.overflow = false
}
