package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/input/history"
	"github.com/dshills/mathclip/internal/logger"
)

// SetDefaults registers the default value of every setting. Registering
// each key also makes it visible to environment overrides.
func SetDefaults(v *viper.Viper) {
	// Render defaults
	v.SetDefault("render.dpi", 300)
	v.SetDefault("render.font_size", 50.0)
	v.SetDefault("render.color", "black")
	v.SetDefault("render.latex", "latex")
	v.SetDefault("render.dvipng", "dvipng")
	v.SetDefault("render.timeout", "30s")
	v.SetDefault("render.pad", 0.05)

	// Clipboard defaults
	v.SetDefault("clipboard.backend", "auto")
	v.SetDefault("clipboard.output", "")

	v.SetDefault("prompt.text", "LaTeX > ")

	// Completion defaults
	v.SetDefault("completion.while_typing", true)
	v.SetDefault("completion.enter_accepts", false)
	v.SetDefault("completion.max_items", 8)

	v.SetDefault("keys.next_placeholder", "Ctrl+Space")

	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.script", "")

	v.SetDefault("history.size", history.DefaultSize)

	// Log defaults
	v.SetDefault("log.file", logger.DefaultFile())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

const fileHeader = `# mathclip configuration
# Environment variables override these values: render.dpi is MATHCLIP_RENDER_DPI.

`

// WriteDefaults writes the default configuration to path as TOML. An
// existing file is only replaced when force is set.
func WriteDefaults(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
		}
	}

	v := viper.New()
	SetDefaults(v)
	body, err := toml.Marshal(v.AllSettings())
	if err != nil {
		return errors.Wrap(err, "encode default configuration")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), body...), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
