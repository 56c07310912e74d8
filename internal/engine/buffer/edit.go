package buffer

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/mathclip/internal/errors"
)

// Edit is a compound change applied in one step: replace [Start, End) with
// NewText and leave the cursor Cursor runes after Start.
type Edit struct {
	Start   int
	End     int
	NewText string
	Cursor  int
}

// NewInsert creates an Edit that inserts text at pos and leaves the cursor
// cursor runes into the inserted text.
func NewInsert(pos int, text string, cursor int) Edit {
	return Edit{Start: pos, End: pos, NewText: text, Cursor: cursor}
}

// NewReplace creates an Edit that replaces [start, end) with text and leaves
// the cursor at the end of the new text.
func NewReplace(start, end int, text string) Edit {
	return Edit{Start: start, End: end, NewText: text, Cursor: utf8.RuneCountInString(text)}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Start == e.End {
		return fmt.Sprintf("Insert(%d, %q, cursor+%d)", e.Start, e.NewText, e.Cursor)
	}
	return fmt.Sprintf("Replace[%d:%d] with %q, cursor+%d", e.Start, e.End, e.NewText, e.Cursor)
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() int {
	return utf8.RuneCountInString(e.NewText) - (e.End - e.Start)
}

func (e Edit) validate(length int) error {
	if e.Start < 0 || e.End > length || e.Start > e.End {
		return errors.Wrapf(ErrOffsetOutOfRange, "edit %s (len %d)", e, length)
	}
	if e.Cursor < 0 || e.Cursor > utf8.RuneCountInString(e.NewText) {
		return errors.Wrapf(ErrOffsetOutOfRange, "edit %s places cursor outside new text", e)
	}
	return nil
}
