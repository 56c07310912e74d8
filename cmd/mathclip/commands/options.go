// Package commands implements the mathclip subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dshills/mathclip/internal/app"
)

// Global flag names.
const (
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
	FlagColor    = "color"
)

// colorFlags are the shorthand color switches, in precedence order.
var colorFlags = []struct {
	name, short, color string
}{
	{"white", "w", "white"},
	{"red", "r", "red"},
	{"blue", "b", "blue"},
	{"green", "g", "green"},
}

// AddGlobalFlags registers the flags shared by every command on root.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringP(FlagConfig, "c", "", "Path to the configuration file")
	flags.String(FlagLogLevel, "", "Log level: debug, info, warn, error")
	flags.String(FlagColor, "", "Formula color: a name or #rrggbb")

	names := []string{FlagColor}
	for _, f := range colorFlags {
		flags.BoolP(f.name, f.short, false, "Render in "+f.color)
		names = append(names, f.name)
	}
	root.MarkFlagsMutuallyExclusive(names...)
}

// Options builds application options from the global flags of cmd.
func Options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	var opts app.Options
	opts.ConfigPath, _ = flags.GetString(FlagConfig)
	opts.LogLevel, _ = flags.GetString(FlagLogLevel)
	opts.Color, _ = flags.GetString(FlagColor)
	for _, f := range colorFlags {
		if on, _ := flags.GetBool(f.name); on {
			opts.Color = f.color
		}
	}
	return opts
}
