package keymap

// Default returns the line editor's bindings. Printable characters are not
// bound; the editor inserts them directly.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			// Movement
			{Keys: "Left", Action: "cursor.left", Description: "Move left", Category: "Movement"},
			{Keys: "Right", Action: "cursor.right", Description: "Move right", Category: "Movement"},
			{Keys: "Home", Action: "cursor.lineStart", Description: "Move to line start", Category: "Movement"},
			{Keys: "Ctrl+A", Action: "cursor.lineStart", Description: "Move to line start", Category: "Movement"},
			{Keys: "End", Action: "cursor.lineEnd", Description: "Move to line end", Category: "Movement"},
			{Keys: "Ctrl+E", Action: "cursor.lineEnd", Description: "Move to line end", Category: "Movement"},
			{Keys: "Ctrl+B", Action: "cursor.left", Description: "Move left", Category: "Movement"},
			{Keys: "Ctrl+F", Action: "cursor.right", Description: "Move right", Category: "Movement"},

			// Editing
			{Keys: "Backspace", Action: "editor.deleteBackward", Description: "Delete previous character", Category: "Editing"},
			{Keys: "Ctrl+H", Action: "editor.deleteBackward", Description: "Delete previous character", Category: "Editing"},
			{Keys: "Delete", Action: "editor.deleteForward", Description: "Delete next character", Category: "Editing"},
			{Keys: "Ctrl+U", Action: "editor.deleteToLineStart", Description: "Delete to line start", Category: "Editing"},
			{Keys: "Ctrl+K", Action: "editor.deleteToLineEnd", Description: "Delete to line end", Category: "Editing"},
			{Keys: "Ctrl+W", Action: "editor.deleteWordBackward", Description: "Delete previous word", Category: "Editing"},

			// Line
			{Keys: "Enter", Action: "line.submit", Description: "Render and copy the line", Category: "Line"},
			{Keys: "Ctrl+C", Action: "line.cancel", Description: "Discard the line", Category: "Line"},
			{Keys: "Ctrl+D", Action: "line.eof", Description: "Quit on an empty line", Category: "Line"},

			// Completion
			{Keys: "Tab", Action: "completion.accept", Description: "Accept or show completions", Category: "Completion"},
			{Keys: "Escape", Action: "completion.cancel", Description: "Hide completions", Category: "Completion"},
			{Keys: "Backtab", Action: "completion.prev", Description: "Previous completion", Category: "Completion"},
			{Keys: "Ctrl+N", Action: "completion.next", Description: "Next completion", Category: "Completion"},
			{Keys: "Ctrl+P", Action: "completion.prev", Description: "Previous completion", Category: "Completion"},

			// History and menu navigation
			{Keys: "Up", Action: "history.older", Description: "Previous completion or older line", Category: "History"},
			{Keys: "Down", Action: "history.newer", Description: "Next completion or newer line", Category: "History"},

			// Snippets
			{Keys: "Ctrl+Space", Action: "snippet.nextPlaceholder", Description: "Jump to next placeholder", Category: "Snippet"},
		},
	}
}
