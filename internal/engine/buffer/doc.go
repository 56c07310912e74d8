// Package buffer provides the single-line text buffer edited by the
// interactive prompt: a sequence of characters plus one cursor.
//
// All positions are rune offsets, never byte offsets. A Buffer is owned by
// exactly one line editor for the lifetime of one input line and is not safe
// for concurrent use.
//
// Basic usage:
//
//	buf := buffer.New()
//	buf.InsertAt(0, `\fr`)    // `\fr`, cursor 3
//	buf.DeleteRange(1, 3)     // `\`, cursor 1
//	buf.InsertAt(1, "alpha")  // `\alpha`, cursor 6
//
// Cursor adjustment follows one rule: an edit at or before the cursor moves
// it by the net length change, an edit strictly after it leaves it alone, and
// a deletion that spans the cursor collapses it to the start of the deleted
// range. Every operation either succeeds and leaves 0 <= cursor <= Len(), or
// fails with ErrOffsetOutOfRange and leaves the buffer untouched.
//
// Snapshots:
//
// State is an immutable (text, cursor) value. Scanning code (trigger
// detection, placeholder navigation) works on a State and returns a new one,
// so several engines can inspect the same keystroke's buffer without
// aliasing the live slice. Buffer.Restore commits such a State back.
package buffer
