// Package history keeps the lines submitted in a session for Up/Down
// recall.
package history

import "sync"

// DefaultSize is the capacity used when none is configured.
const DefaultSize = 500

// History tracks submitted lines in most-recently-used order.
type History struct {
	mu       sync.Mutex
	items    []string
	maxItems int
}

// New creates a line history with the given capacity.
func New(maxItems int) *History {
	if maxItems <= 0 {
		maxItems = DefaultSize
	}
	return &History{
		items:    make([]string, 0, maxItems),
		maxItems: maxItems,
	}
}

// Add records a submitted line.
// If the line was already in history, it is moved to the front.
func (h *History) Add(line string) {
	if line == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i, item := range h.items {
		if item == line {
			h.items = append(h.items[:i], h.items[i+1:]...)
			break
		}
	}

	h.items = append([]string{line}, h.items...)
	if len(h.items) > h.maxItems {
		h.items = h.items[:h.maxItems]
	}
}

// At returns the line at position i (0 = most recent).
func (h *History) At(i int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i < 0 || i >= len(h.items) {
		return "", false
	}
	return h.items[i], true
}

// Recent returns up to limit of the most recent lines.
func (h *History) Recent(limit int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if limit <= 0 || limit > len(h.items) {
		limit = len(h.items)
	}
	result := make([]string, limit)
	copy(result, h.items[:limit])
	return result
}

// Len returns the number of lines in history.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Resize changes the capacity, dropping the oldest lines if needed.
func (h *History) Resize(maxItems int) {
	if maxItems <= 0 {
		maxItems = DefaultSize
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxItems = maxItems
	if len(h.items) > maxItems {
		h.items = h.items[:maxItems]
	}
}

// Cursor walks a History from the newest line back. The zero position is
// the line being edited, which is saved as a draft on the first step back
// and restored when walking forward past the newest entry.
type Cursor struct {
	h     *History
	pos   int
	draft string
}

// NewCursor starts a walk at the line being edited.
func NewCursor(h *History) *Cursor {
	return &Cursor{h: h}
}

// Older returns the next older line. current is the text being edited and
// is only kept when leaving position zero.
func (c *Cursor) Older(current string) (string, bool) {
	line, ok := c.h.At(c.pos)
	if !ok {
		return "", false
	}
	if c.pos == 0 {
		c.draft = current
	}
	c.pos++
	return line, true
}

// Newer returns the next newer line, or the saved draft after the newest.
func (c *Cursor) Newer() (string, bool) {
	switch c.pos {
	case 0:
		return "", false
	case 1:
		c.pos = 0
		return c.draft, true
	}
	c.pos--
	return c.h.At(c.pos - 1)
}

// Reset returns the cursor to the line being edited.
func (c *Cursor) Reset() {
	c.pos = 0
	c.draft = ""
}
