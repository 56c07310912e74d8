// Package completion finds the backslash command being typed before the
// cursor and offers catalog entries that complete it.
//
// Nothing here is cached across keystrokes: the trigger span is recomputed
// from a buffer.State every time, and Apply re-derives it before editing so
// a candidate computed for an older buffer is rejected rather than applied
// to the wrong text.
package completion
