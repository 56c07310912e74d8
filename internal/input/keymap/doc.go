// Package keymap maps key events to named line-editor actions.
//
// Actions use the dotted names of the handlers that run them, such as
// "editor.insertNewline" or "completion.accept". A Keymap is a plain list of
// bindings; Parse resolves it into a lookup table keyed by normalized
// key.Event.
package keymap
