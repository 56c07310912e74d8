package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dshills/mathclip/internal/config"
	"github.com/dshills/mathclip/internal/errors"
)

// ConfigCmd groups configuration file helpers.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file holding the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		if err := config.WriteDefaults(path, force); err != nil {
			return err
		}
		pterm.Success.Printf("Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString(FlagConfig); path != "" {
		return path, nil
	}
	if path := config.DefaultPath(); path != "" {
		return path, nil
	}
	return "", errors.WithHint(errors.New("no user configuration directory"),
		"pass --config with an explicit path")
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
	ConfigCmd.AddCommand(configInitCmd, configPathCmd)
}
