package buffer

import (
	"github.com/dshills/mathclip/internal/errors"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// Buffer is an editable rune sequence with a single cursor.
type Buffer struct {
	text   []rune
	cursor int
}

// New creates an empty buffer with the cursor at 0.
func New() *Buffer {
	return &Buffer{}
}

// NewFromString creates a buffer holding s with the cursor at the end.
func NewFromString(s string) *Buffer {
	text := []rune(s)
	return &Buffer{text: text, cursor: len(text)}
}

// Read Operations

// Text returns the buffer content.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// Snapshot returns an immutable copy of the current text and cursor.
func (b *Buffer) Snapshot() State {
	text := make([]rune, len(b.text))
	copy(text, b.text)
	return State{text: text, cursor: b.cursor}
}

// Find returns the offset of the first occurrence of r at or after from.
// The second result is false when there is none or from is outside the
// buffer.
func (b *Buffer) Find(r rune, from int) (int, bool) {
	if from < 0 || from > len(b.text) {
		return -1, false
	}
	for i := from; i < len(b.text); i++ {
		if b.text[i] == r {
			return i, true
		}
	}
	return -1, false
}

// Write Operations

// InsertAt inserts text at pos. The cursor moves by the inserted length when
// pos <= cursor.
func (b *Buffer) InsertAt(pos int, text string) error {
	if pos < 0 || pos > len(b.text) {
		return errors.Wrapf(ErrOffsetOutOfRange, "insert at %d (len %d)", pos, len(b.text))
	}
	ins := []rune(text)
	if len(ins) == 0 {
		return nil
	}

	next := make([]rune, 0, len(b.text)+len(ins))
	next = append(next, b.text[:pos]...)
	next = append(next, ins...)
	next = append(next, b.text[pos:]...)
	b.text = next

	if pos <= b.cursor {
		b.cursor += len(ins)
	}
	return nil
}

// DeleteRange removes the runes in [start, end).
func (b *Buffer) DeleteRange(start, end int) error {
	if start < 0 || end > len(b.text) || start > end {
		return errors.Wrapf(ErrOffsetOutOfRange, "delete [%d, %d) (len %d)", start, end, len(b.text))
	}
	if start == end {
		return nil
	}

	b.text = append(b.text[:start], b.text[end:]...)

	switch {
	case end <= b.cursor:
		b.cursor -= end - start
	case start < b.cursor:
		b.cursor = start
	}
	return nil
}

// MoveCursor places the cursor at pos.
func (b *Buffer) MoveCursor(pos int) error {
	if pos < 0 || pos > len(b.text) {
		return errors.Wrapf(ErrOffsetOutOfRange, "move cursor to %d (len %d)", pos, len(b.text))
	}
	b.cursor = pos
	return nil
}

// Apply replaces [e.Start, e.End) with e.NewText and places the cursor
// e.Cursor runes after e.Start. The edit is validated in full before the
// buffer is touched, so a failed Apply changes nothing.
func (b *Buffer) Apply(e Edit) error {
	if err := e.validate(len(b.text)); err != nil {
		return err
	}
	ins := []rune(e.NewText)

	next := make([]rune, 0, len(b.text)-(e.End-e.Start)+len(ins))
	next = append(next, b.text[:e.Start]...)
	next = append(next, ins...)
	next = append(next, b.text[e.End:]...)
	b.text = next
	b.cursor = e.Start + e.Cursor
	return nil
}

// Restore replaces the buffer content and cursor with s.
func (b *Buffer) Restore(s State) {
	text := make([]rune, len(s.text))
	copy(text, s.text)
	b.text = text
	b.cursor = s.cursor
}

// Reset replaces the content with s and puts the cursor at the end.
func (b *Buffer) Reset(s string) {
	b.text = []rune(s)
	b.cursor = len(b.text)
}
