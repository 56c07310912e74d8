// Package autopair inserts matching closing delimiters as opening ones are
// typed.
package autopair

import (
	"github.com/dshills/mathclip/internal/engine/buffer"
)

// pairs maps each opening delimiter to its closer.
var pairs = map[rune]rune{
	'{': '}',
	'(': ')',
	'[': ']',
}

// Closer returns the closing delimiter for open.
func Closer(open rune) (rune, bool) {
	c, ok := pairs[open]
	return c, ok
}

// IsOpener reports whether r starts a pair.
func IsOpener(r rune) bool {
	_, ok := pairs[r]
	return ok
}

// Edit returns the edit that inserts the pair for open at cursor and leaves
// the cursor between the two delimiters.
func Edit(open rune, cursor int) (buffer.Edit, bool) {
	closer, ok := pairs[open]
	if !ok {
		return buffer.Edit{}, false
	}
	return buffer.NewInsert(cursor, string([]rune{open, closer}), 1), true
}

// Handle applies the pair for r to buf. It returns false, leaving buf
// untouched, when r is not an opening delimiter.
//
// A closing delimiter already under the cursor is not typed over; every
// opener inserts a fresh pair.
func Handle(buf *buffer.Buffer, r rune) (bool, error) {
	e, ok := Edit(r, buf.Cursor())
	if !ok {
		return false, nil
	}
	if err := buf.Apply(e); err != nil {
		return false, err
	}
	return true, nil
}
