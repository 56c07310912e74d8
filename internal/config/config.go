package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dshills/mathclip/internal/catalog"
	"github.com/dshills/mathclip/internal/clipboard"
	"github.com/dshills/mathclip/internal/editor"
	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/input/key"
	"github.com/dshills/mathclip/internal/input/keymap"
	"github.com/dshills/mathclip/internal/logger"
	"github.com/dshills/mathclip/internal/typeset"
)

// EnvPrefix prefixes environment overrides: render.dpi is MATHCLIP_RENDER_DPI.
const EnvPrefix = "MATHCLIP"

// ErrInvalid marks settings that load but cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete mathclip configuration.
type Config struct {
	Render     RenderConfig     `mapstructure:"render"`
	Clipboard  ClipboardConfig  `mapstructure:"clipboard"`
	Prompt     PromptConfig     `mapstructure:"prompt"`
	Completion CompletionConfig `mapstructure:"completion"`
	Keys       KeysConfig       `mapstructure:"keys"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	History    HistoryConfig    `mapstructure:"history"`
	Log        LogConfig        `mapstructure:"log"`

	// Path is the file the settings were read from, empty when only
	// defaults and the environment applied.
	Path string `mapstructure:"-"`
}

// RenderConfig configures typesetting
type RenderConfig struct {
	DPI      int           `mapstructure:"dpi"`
	FontSize float64       `mapstructure:"font_size"` // points
	Color    string        `mapstructure:"color"`     // black, white, red, green, blue or #rrggbb
	LaTeX    string        `mapstructure:"latex"`
	DVIPNG   string        `mapstructure:"dvipng"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Pad      float64       `mapstructure:"pad"` // inches
}

// ClipboardConfig selects where rendered images go
type ClipboardConfig struct {
	Backend string `mapstructure:"backend"`
	Output  string `mapstructure:"output"` // file backend only
}

// PromptConfig configures the interactive prompt
type PromptConfig struct {
	Text string `mapstructure:"text"`
}

// CompletionConfig configures the completion menu
type CompletionConfig struct {
	WhileTyping  bool `mapstructure:"while_typing"`
	EnterAccepts bool `mapstructure:"enter_accepts"`
	MaxItems     int  `mapstructure:"max_items"` // 0 = unlimited
}

// KeysConfig overrides key bindings
type KeysConfig struct {
	NextPlaceholder string          `mapstructure:"next_placeholder"`
	Bind            []BindingConfig `mapstructure:"bind"`
}

// BindingConfig binds one key to an editor action
type BindingConfig struct {
	Keys   string `mapstructure:"keys"`
	Action string `mapstructure:"action"`
}

// CatalogConfig names symbol extension sources
type CatalogConfig struct {
	File   string `mapstructure:"file"`   // YAML
	Script string `mapstructure:"script"` // Lua
}

// HistoryConfig configures line history
type HistoryConfig struct {
	Size int `mapstructure:"size"`
}

// LogConfig configures the log file
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// DefaultPath returns $XDG_CONFIG_HOME/mathclip/config.toml, or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mathclip", "config.toml")
}

// Load reads the configuration. An explicit path must exist; with an empty
// path the default file is used when present.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}
	cfg.Path = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat(path); err != nil {
			return v, nil
		}
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.WithHint(errors.Newf("config file %s does not exist", path),
			"create one with `mathclip config init`")
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	return v, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.RenderOptions().Validate(); err != nil {
		return errors.Mark(errors.Wrap(err, "render"), ErrInvalid)
	}
	if _, err := clipboard.New(c.ClipboardOptions(), nil); err != nil {
		return errors.Mark(errors.Wrap(err, "clipboard"), ErrInvalid)
	}
	if c.Completion.MaxItems < 0 {
		return errors.Mark(errors.Newf("completion.max_items must not be negative, got %d", c.Completion.MaxItems), ErrInvalid)
	}
	if c.History.Size <= 0 {
		return errors.Mark(errors.Newf("history.size must be positive, got %d", c.History.Size), ErrInvalid)
	}
	if _, err := c.Keymap(); err != nil {
		return errors.Mark(errors.Wrap(err, "keys"), ErrInvalid)
	}
	return nil
}

// RenderOptions returns the typesetting options.
func (c *Config) RenderOptions() typeset.Options {
	return typeset.Options{
		DPI:      c.Render.DPI,
		FontSize: c.Render.FontSize,
		Color:    c.Render.Color,
		LaTeX:    c.Render.LaTeX,
		DVIPNG:   c.Render.DVIPNG,
		Timeout:  c.Render.Timeout,
		Pad:      c.Render.Pad,
	}
}

// ClipboardOptions returns the clipboard selection.
func (c *Config) ClipboardOptions() clipboard.Options {
	return clipboard.Options{Backend: c.Clipboard.Backend, Output: c.Clipboard.Output}
}

// EditorOptions returns the line editor options.
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		CompleteWhileTyping: c.Completion.WhileTyping,
		EnterAccepts:        c.Completion.EnterAccepts,
		MaxItems:            c.Completion.MaxItems,
	}
}

// Keymap returns the default bindings with the configured overrides
// applied, parsed.
func (c *Config) Keymap() (*keymap.Resolved, error) {
	km := keymap.Default().Clone()
	km.Source = "config"

	if np := strings.TrimSpace(c.Keys.NextPlaceholder); np != "" {
		km.Rebind(np, editor.ActionNextPlaceholder)
	}
	for i, b := range c.Keys.Bind {
		if !editor.IsAction(b.Action) {
			return nil, errors.WithHintf(errors.Newf("keys.bind[%d]: unknown action %q", i, b.Action),
				"actions: %s", strings.Join(editor.Actions(), ", "))
		}
		if _, err := key.Parse(b.Keys); err != nil {
			return nil, errors.Wrapf(err, "keys.bind[%d]", i)
		}
		km.Add(b.Keys, b.Action)
	}
	return km.Parse()
}

// CatalogSources returns the symbol extension inputs.
func (c *Config) CatalogSources() catalog.Sources {
	return catalog.Sources{File: expandHome(c.Catalog.File), Script: expandHome(c.Catalog.Script)}
}

// LoggerConfig returns the logging setup.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{File: expandHome(c.Log.File), Level: c.Log.Level, JSON: c.Log.JSON}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
