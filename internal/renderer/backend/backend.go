// Package backend provides the terminal abstraction the line editor draws
// on and reads keys from.
package backend

import (
	"strings"

	"github.com/dshills/mathclip/internal/input/key"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventPaste brackets pasted text. The key events between a start and
	// an end event are the pasted runes.
	EventPaste
	// EventInterrupt carries a value posted with PostInterrupt.
	EventInterrupt
	// EventClosed is returned once the backend has no more events.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key key.Event

	// Resize event fields
	Width, Height int

	// PasteStart is true for the event opening a paste.
	PasteStart bool

	// Interrupt payload
	Data any
}

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, r rune, style Style)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	PollEvent() Event

	// PostInterrupt queues an EventInterrupt carrying data. It is safe to
	// call from any goroutine.
	PostInterrupt(data any) error

	// Beep produces an audible or visual bell.
	Beep()
}

// NullBackend is an in-memory backend for tests. Its event queue is filled
// up front; PollEvent returns EventClosed once it is drained.
type NullBackend struct {
	width, height int
	cells         [][]rune
	styles        [][]Style
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        chan Event
	beeps         int
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 1024),
	}
}

func (b *NullBackend) Init() error {
	b.cells = make([][]rune, b.height)
	b.styles = make([][]Style, b.height)
	for i := range b.cells {
		b.cells[i] = make([]rune, b.width)
		b.styles[i] = make([]Style, b.width)
	}
	b.Clear()
	return nil
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, r rune, style Style) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = r
		b.styles[y][x] = style
	}
}

func (b *NullBackend) Clear() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = ' '
			b.styles[y][x] = StyleDefault
		}
	}
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	default:
		return Event{Type: EventClosed}
	}
}

func (b *NullBackend) PostInterrupt(data any) error {
	b.Post(Event{Type: EventInterrupt, Data: data})
	return nil
}

func (b *NullBackend) Beep() { b.beeps++ }

// Post queues an event. Events beyond the queue capacity are dropped.
func (b *NullBackend) Post(ev Event) {
	select {
	case b.events <- ev:
	default:
	}
}

// PostKeys queues one key event per spec, parsed with key.MustParse.
func (b *NullBackend) PostKeys(specs ...string) {
	for _, s := range specs {
		b.Post(Event{Type: EventKey, Key: key.MustParse(s)})
	}
}

// PostText queues a key event for every rune of s.
func (b *NullBackend) PostText(s string) {
	for _, r := range s {
		b.Post(Event{Type: EventKey, Key: key.NewRuneEvent(r, key.ModNone)})
	}
}

// PostPaste queues s as a bracketed paste.
func (b *NullBackend) PostPaste(s string) {
	b.Post(Event{Type: EventPaste, PasteStart: true})
	b.PostText(s)
	b.Post(Event{Type: EventPaste})
}

// Row returns row y with trailing blanks removed.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	return strings.TrimRight(string(b.cells[y]), " ")
}

// StyleAt returns the style of the cell at (x, y).
func (b *NullBackend) StyleAt(x, y int) Style {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.styles[y][x]
	}
	return StyleDefault
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// Beeps returns how many times Beep was called.
func (b *NullBackend) Beeps() int {
	return b.beeps
}
