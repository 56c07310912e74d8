package key

import (
	"unicode"
)

// Event represents a single key press. Events are comparable and are used
// directly as keymap keys after Normalize.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this event types a printable character: a rune
// with no Ctrl, Alt or Meta held.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.IsModified()
}

// IsModified returns true if any modifier is pressed.
// For character events, Shift alone is not considered modified
// (since Shift changes the character itself).
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Normalize returns the canonical form used for binding lookups: Shift is
// dropped from character events and Ctrl+letter is lowercased.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		return e
	}
	n := e
	n.Modifiers = n.Modifiers.Without(ModShift)
	if n.Modifiers.Has(ModCtrl) {
		n.Rune = unicode.ToLower(n.Rune)
	}
	return n
}

// String returns the "Ctrl+Space" form of the event, which Parse accepts.
func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		switch e.Rune {
		case ' ':
			name = "Space"
		case '+':
			name = "Plus"
		default:
			name = string(e.Rune)
		}
	}

	mods := e.Modifiers
	if e.Key == KeyRune {
		mods = mods.Without(ModShift)
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}
