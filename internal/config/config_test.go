package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathclip/internal/editor"
	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/input/key"
)

// isolate points the user config directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	isolate(t)
	cfg := Default()

	assert.Equal(t, 300, cfg.Render.DPI)
	assert.Equal(t, 50.0, cfg.Render.FontSize)
	assert.Equal(t, "black", cfg.Render.Color)
	assert.Equal(t, 30*time.Second, cfg.Render.Timeout)
	assert.Equal(t, "auto", cfg.Clipboard.Backend)
	assert.Equal(t, "LaTeX > ", cfg.Prompt.Text)
	assert.True(t, cfg.Completion.WhileTyping)
	assert.False(t, cfg.Completion.EnterAccepts)
	assert.Equal(t, 8, cfg.Completion.MaxItems)
	assert.Equal(t, "Ctrl+Space", cfg.Keys.NextPlaceholder)
	assert.Equal(t, 500, cfg.History.Size)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, Default().Render, cfg.Render)
}

func TestLoadDefaultPath(t *testing.T) {
	isolate(t)
	path := DefaultPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[prompt]\ntext = \"$ \"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "$ ", cfg.Prompt.Text)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
[render]
dpi = 600
color = "#336699"
timeout = "5s"

[completion]
enter_accepts = true
max_items = 0

[keys]
next_placeholder = "Alt+j"

[[keys.bind]]
keys = "Ctrl+J"
action = "completion.next"

[catalog]
file = "~/symbols.yaml"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)

	opts := cfg.RenderOptions()
	assert.Equal(t, 600, opts.DPI)
	assert.Equal(t, 50.0, opts.FontSize, "unset keys keep their defaults")
	assert.Equal(t, "#336699", opts.Color)
	assert.Equal(t, 5*time.Second, opts.Timeout)

	assert.Equal(t, editor.Options{CompleteWhileTyping: true, EnterAccepts: true, MaxItems: 0}, cfg.EditorOptions())
	assert.Equal(t, filepath.Join(dir, "symbols.yaml"), cfg.CatalogSources().File)

	km, err := cfg.Keymap()
	require.NoError(t, err)
	b, ok := km.Lookup(key.MustParse("Alt+j"))
	require.True(t, ok)
	assert.Equal(t, editor.ActionNextPlaceholder, b.Action)
	_, ok = km.Lookup(key.MustParse("Ctrl+Space"))
	assert.False(t, ok, "rebinding replaces the default key")
	b, ok = km.Lookup(key.MustParse("Ctrl+J"))
	require.True(t, ok)
	assert.Equal(t, editor.ActionCompletionNext, b.Action)
}

func TestEnvironmentOverrides(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "[render]\ndpi = 600\n")
	t.Setenv("MATHCLIP_RENDER_DPI", "150")
	t.Setenv("MATHCLIP_COMPLETION_WHILE_TYPING", "false")
	t.Setenv("MATHCLIP_CLIPBOARD_BACKEND", "file")
	t.Setenv("MATHCLIP_CLIPBOARD_OUTPUT", filepath.Join(dir, "out.png"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.Render.DPI)
	assert.False(t, cfg.Completion.WhileTyping)
	assert.Equal(t, "file", cfg.ClipboardOptions().Backend)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "mathclip config init")
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"color":     "[render]\ncolor = \"mauve\"\n",
		"dpi":       "[render]\ndpi = 0\n",
		"backend":   "[clipboard]\nbackend = \"pbcopy\"\n",
		"file":      "[clipboard]\nbackend = \"file\"\n",
		"max items": "[completion]\nmax_items = -1\n",
		"history":   "[history]\nsize = 0\n",
		"key":       "[keys]\nnext_placeholder = \"Hyper+X\"\n",
		"action":    "[[keys.bind]]\nkeys = \"Ctrl+J\"\naction = \"editor.paste\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			_, err := Load(writeConfig(t, dir, body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := isolate(t)
	_, err := Load(writeConfig(t, dir, "[render\n"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestWriteDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "mathclip", "config.toml")

	require.NoError(t, WriteDefaults(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# mathclip configuration")
	assert.Contains(t, string(data), "[render]")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Path = ""
	assert.Equal(t, Default(), cfg)

	err = WriteDefaults(path, false)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--force")
	assert.NoError(t, WriteDefaults(path, true))
}

func TestLoggerConfig(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.Log.File = "~/logs/mathclip.log"
	cfg.Log.Level = "debug"

	lc := cfg.LoggerConfig()
	assert.Equal(t, filepath.Join(dir, "logs", "mathclip.log"), lc.File)
	assert.Equal(t, "debug", lc.Level)
}
