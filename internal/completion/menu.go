package completion

import (
	"github.com/dshills/mathclip/internal/catalog"
	"github.com/dshills/mathclip/internal/engine/buffer"
)

// Menu holds the candidates shown for the current trigger span and which
// one is selected.
type Menu struct {
	Items    []Candidate
	Selected int
	Active   bool

	// MaxItems caps the number of items shown. Zero means no cap.
	MaxItems int
}

// Refresh recomputes the items for s. The menu closes when there are no
// candidates. The selection resets to the first item.
func (m *Menu) Refresh(cat *catalog.Catalog, s buffer.State) {
	items := Candidates(cat, s)
	if len(items) == 0 {
		m.Close()
		return
	}
	m.Items = items
	m.Selected = 0
	m.Active = true
}

// Close hides the menu and drops its items.
func (m *Menu) Close() {
	m.Items = nil
	m.Selected = 0
	m.Active = false
}

// Current returns the selected candidate.
func (m *Menu) Current() (Candidate, bool) {
	if !m.Active || len(m.Items) == 0 {
		return Candidate{}, false
	}
	return m.Items[m.Selected], true
}

// Move shifts the selection by delta, wrapping at both ends.
func (m *Menu) Move(delta int) {
	if !m.Active || len(m.Items) == 0 {
		return
	}
	n := len(m.Items)
	m.Selected = ((m.Selected+delta)%n + n) % n
}

// Visible returns the window of items to draw and the index of the selected
// item within it.
func (m *Menu) Visible() ([]Candidate, int) {
	if !m.Active {
		return nil, -1
	}
	if m.MaxItems <= 0 || len(m.Items) <= m.MaxItems {
		return m.Items, m.Selected
	}

	first := m.Selected - m.MaxItems + 1
	if first < 0 {
		first = 0
	}
	return m.Items[first : first+m.MaxItems], m.Selected - first
}

// Accept applies the selected candidate to buf and closes the menu.
func (m *Menu) Accept(buf *buffer.Buffer) error {
	c, ok := m.Current()
	if !ok {
		return nil
	}
	m.Close()
	return Apply(buf, c)
}
