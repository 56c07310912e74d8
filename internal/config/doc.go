// Package config loads mathclip settings.
//
// Settings come from three layers, higher overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment (MATHCLIP_) │  ← MATHCLIP_RENDER_DPI=600
//	├─────────────────────────────┤
//	│  2. Config file (TOML)      │  ← ~/.config/mathclip/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller on the loaded Config.
//
// # Configuration File
//
//	[render]
//	dpi = 300
//	font_size = 50
//	color = "black"
//
//	[clipboard]
//	backend = "auto"
//
//	[keys]
//	next_placeholder = "Ctrl+Space"
//
//	[[keys.bind]]
//	keys = "Ctrl+J"
//	action = "completion.next"
//
// `mathclip config init` writes the defaults with comments stripped. The
// watcher sub-package reports edits to the file so the interactive session
// can apply them without a restart.
package config
