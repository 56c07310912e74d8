package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dshills/mathclip/internal/catalog"
	"github.com/dshills/mathclip/internal/config"
)

// SymbolsCmd lists the completion vocabulary.
var SymbolsCmd = &cobra.Command{
	Use:   "symbols [prefix]",
	Short: "List the commands offered by completion",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString(FlagConfig)
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		cat, err := catalog.Load(cmd.Context(), cfg.CatalogSources())
		if err != nil {
			return err
		}

		var prefix string
		if len(args) == 1 {
			prefix = strings.TrimPrefix(args[0], `\`)
		}
		entries := cat.Match(prefix)
		if len(entries) == 0 {
			pterm.Warning.Printf("No commands start with \\%s\n", prefix)
			return nil
		}
		return pterm.DefaultTable.WithHasHeader().WithData(symbolTable(entries)).Render()
	},
}

func symbolTable(entries []catalog.SymbolEntry) pterm.TableData {
	data := pterm.TableData{{"Command", "Kind", "Template"}}
	for _, e := range entries {
		data = append(data, []string{e.Label(), e.Kind().String(), e.Template})
	}
	return data
}
