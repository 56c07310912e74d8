package buffer

import (
	"github.com/dshills/mathclip/internal/errors"
)

// State is a read-only (text, cursor) value. It never shares storage with
// the Buffer it came from.
type State struct {
	text   []rune
	cursor int
}

// NewState builds a State with the cursor at the given rune offset.
func NewState(text string, cursor int) (State, error) {
	runes := []rune(text)
	if cursor < 0 || cursor > len(runes) {
		return State{}, errors.Wrapf(ErrOffsetOutOfRange, "cursor %d (len %d)", cursor, len(runes))
	}
	return State{text: runes, cursor: cursor}, nil
}

// Text returns the full content.
func (s State) Text() string {
	return string(s.text)
}

// Len returns the length in runes.
func (s State) Len() int {
	return len(s.text)
}

// Cursor returns the cursor offset.
func (s State) Cursor() int {
	return s.cursor
}

// RuneAt returns the rune at offset, or false when offset is out of range.
func (s State) RuneAt(offset int) (rune, bool) {
	if offset < 0 || offset >= len(s.text) {
		return 0, false
	}
	return s.text[offset], true
}

// Slice returns the text in [start, end), clamped to the content.
func (s State) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return ""
	}
	return string(s.text[start:end])
}

// LastIndexBefore returns the offset of the last r in [0, pos).
func (s State) LastIndexBefore(r rune, pos int) (int, bool) {
	if pos > len(s.text) {
		pos = len(s.text)
	}
	for i := pos - 1; i >= 0; i-- {
		if s.text[i] == r {
			return i, true
		}
	}
	return -1, false
}

// IndexFrom returns the offset of the first r in [pos, Len()).
func (s State) IndexFrom(r rune, pos int) (int, bool) {
	if pos < 0 {
		pos = 0
	}
	for i := pos; i < len(s.text); i++ {
		if s.text[i] == r {
			return i, true
		}
	}
	return -1, false
}

// WithCursor returns a copy of s with the cursor at pos.
func (s State) WithCursor(pos int) (State, error) {
	if pos < 0 || pos > len(s.text) {
		return s, errors.Wrapf(ErrOffsetOutOfRange, "cursor %d (len %d)", pos, len(s.text))
	}
	return State{text: s.text, cursor: pos}, nil
}
