package commands

import (
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/mathclip/internal/app"
	"github.com/dshills/mathclip/internal/errors"
)

// RenderCmd typesets one formula and publishes it without the editor.
var RenderCmd = &cobra.Command{
	Use:   "render [formula]",
	Short: "Render a single formula to the clipboard",
	Long: `Render a single formula and publish the image, the same way the
interactive editor does on Enter.

With no arguments the formula is read from standard input.`,
	Example: `  mathclip render '\frac{a}{b}'
  echo 'e^{i\pi} + 1 = 0' | mathclip render -r`,
	RunE: func(cmd *cobra.Command, args []string) error {
		formula, err := formulaFrom(cmd, args)
		if err != nil {
			return err
		}

		application, err := app.New(cmd.Context(), Options(cmd))
		if err != nil {
			return err
		}
		defer application.Shutdown()

		spinner, _ := pterm.DefaultSpinner.Start("Rendering...")
		out, err := application.Render(cmd.Context(), formula)
		if err != nil {
			if spinner != nil {
				spinner.Fail("Render failed")
			}
			return err
		}
		if spinner != nil {
			spinner.Success(out.Message())
		} else {
			pterm.Success.Println(out.Message())
		}
		return nil
	},
}

// formulaFrom joins the arguments, or reads piped standard input.
func formulaFrom(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.WithHint(errors.New("no formula given"),
			"pass it as an argument or pipe it on standard input")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", errors.Wrap(err, "read formula")
	}
	formula := strings.TrimSpace(string(data))
	if formula == "" {
		return "", errors.New("no formula given")
	}
	return formula, nil
}
