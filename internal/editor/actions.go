package editor

import "slices"

// Action names bound in keymap.Default.
const (
	ActionCursorLeft      = "cursor.left"
	ActionCursorRight     = "cursor.right"
	ActionCursorLineStart = "cursor.lineStart"
	ActionCursorLineEnd   = "cursor.lineEnd"

	ActionDeleteBackward     = "editor.deleteBackward"
	ActionDeleteForward      = "editor.deleteForward"
	ActionDeleteToLineStart  = "editor.deleteToLineStart"
	ActionDeleteToLineEnd    = "editor.deleteToLineEnd"
	ActionDeleteWordBackward = "editor.deleteWordBackward"

	ActionSubmit = "line.submit"
	ActionCancel = "line.cancel"
	ActionEOF    = "line.eof"

	ActionCompletionAccept = "completion.accept" // Tab - accept, or open the menu
	ActionCompletionCancel = "completion.cancel" // Escape - hide until the next edit
	ActionCompletionNext   = "completion.next"
	ActionCompletionPrev   = "completion.prev"

	ActionHistoryOlder = "history.older" // Up - menu selection when open
	ActionHistoryNewer = "history.newer" // Down - menu selection when open

	ActionNextPlaceholder = "snippet.nextPlaceholder" // Ctrl+Space
)

// Actions returns every action name the editor executes.
func Actions() []string {
	return []string{
		ActionCursorLeft, ActionCursorRight, ActionCursorLineStart, ActionCursorLineEnd,
		ActionDeleteBackward, ActionDeleteForward, ActionDeleteToLineStart, ActionDeleteToLineEnd, ActionDeleteWordBackward,
		ActionSubmit, ActionCancel, ActionEOF,
		ActionCompletionAccept, ActionCompletionCancel, ActionCompletionNext, ActionCompletionPrev,
		ActionHistoryOlder, ActionHistoryNewer,
		ActionNextPlaceholder,
	}
}

// IsAction reports whether name is one of Actions.
func IsAction(name string) bool {
	return slices.Contains(Actions(), name)
}

// Result tells the caller what a key did to the line as a whole.
type Result int

const (
	// ResultNone means the line is still being edited.
	ResultNone Result = iota
	// ResultSubmit means the line was accepted; read it with Text.
	ResultSubmit
	// ResultCancel means the line was discarded.
	ResultCancel
	// ResultEOF means end of input was requested on an empty line.
	ResultEOF
)

func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultSubmit:
		return "submit"
	case ResultCancel:
		return "cancel"
	case ResultEOF:
		return "eof"
	default:
		return "unknown"
	}
}
