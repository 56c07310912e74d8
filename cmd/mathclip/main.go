// Command mathclip is a terminal line editor for LaTeX formulas. Each
// submitted line is typeset and the image is placed on the clipboard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dshills/mathclip/cmd/mathclip/commands"
	"github.com/dshills/mathclip/internal/app"
	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/renderer/backend"
	"github.com/dshills/mathclip/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mathclip",
	Short: "Type LaTeX, get an image on the clipboard",
	Long: `mathclip is a line editor for LaTeX formulas.

Type a formula with Tab completion and snippet placeholders, press Enter,
and the typeset image is copied to the clipboard. Type 'exit' to quit.`,
	Version:       version.Get().Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

func init() {
	commands.AddGlobalFlags(rootCmd)
	rootCmd.Flags().Bool("no-watch", false, "Do not reload the configuration file when it changes")

	rootCmd.AddCommand(commands.RenderCmd)
	rootCmd.AddCommand(commands.SymbolsCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	opts := commands.Options(cmd)
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	opts.Watch = !noWatch

	application, err := app.New(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		return err
	}
	application.SetBackend(term)

	return application.Run(cmd.Context())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		pterm.Error.Println(errors.UserMessage(err))
		os.Exit(1)
	}
}
