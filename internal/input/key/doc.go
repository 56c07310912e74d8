// Package key provides key event types and parsing for the line editor.
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift, Meta
//   - Event: one key press with its modifiers
//
// # Key Specifications
//
// Bindings in configuration are written in either of two formats:
//
//   - With modifiers: "Ctrl+Space", "Alt+N", "Tab", "Enter"
//   - Vim-style: "<C-Space>", "<C-n>", "<CR>", "<Esc>"
package key
