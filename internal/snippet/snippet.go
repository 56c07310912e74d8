// Package snippet places the cursor inside committed templates and moves it
// between placeholders.
//
// A slot is an adjacent empty brace pair "{}". Braces with content between
// them, such as the row separators in "pmatrix{  \\  }", are literal text.
package snippet

import (
	"unicode/utf8"

	"github.com/dshills/mathclip/internal/engine/buffer"
)

// Slots returns the rune offsets of every slot's opening brace in template,
// left to right.
func Slots(template string) []int {
	var slots []int
	runes := []rune(template)
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] == '{' && runes[i+1] == '}' {
			slots = append(slots, i)
		}
	}
	return slots
}

// FirstSlot returns the rune offset of the first slot's opening brace.
func FirstSlot(template string) (int, bool) {
	runes := []rune(template)
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] == '{' && runes[i+1] == '}' {
			return i, true
		}
	}
	return -1, false
}

// CommitCursor returns where the cursor lands, relative to the start of the
// inserted template: just inside the first slot, or at the end when the
// template has none.
func CommitCursor(template string) int {
	if i, ok := FirstSlot(template); ok {
		return i + 1
	}
	return utf8.RuneCountInString(template)
}

// Commit returns the edit that replaces [start, end) with template and
// leaves the cursor per CommitCursor.
func Commit(start, end int, template string) buffer.Edit {
	return buffer.Edit{
		Start:   start,
		End:     end,
		NewText: template,
		Cursor:  CommitCursor(template),
	}
}

// NextPlaceholder returns s with the cursor just after the next '{' at or
// after the cursor. When there is none, s is returned unchanged. The scan
// never wraps.
func NextPlaceholder(s buffer.State) buffer.State {
	i, ok := s.IndexFrom('{', s.Cursor())
	if !ok {
		return s
	}
	next, err := s.WithCursor(i + 1)
	if err != nil {
		return s
	}
	return next
}

// Advance moves buf's cursor to the next placeholder. It reports whether
// the cursor moved.
func Advance(buf *buffer.Buffer) bool {
	before := buf.Cursor()
	next := NextPlaceholder(buf.Snapshot())
	if next.Cursor() == before {
		return false
	}
	return buf.MoveCursor(next.Cursor()) == nil
}
