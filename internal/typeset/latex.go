package typeset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/integration/process"
	"github.com/dshills/mathclip/internal/logger"
)

const (
	texFile = "formula.tex"
	dviFile = "formula.dvi"
	pngFile = "formula.png"

	// baseFontSize is the article class body size that dvipng scales from.
	baseFontSize = 10
)

const documentTemplate = `\documentclass{article}
\usepackage{amsmath}
\usepackage{amssymb}
\pagestyle{empty}
\begin{document}
$%s$
\end{document}
`

// Document returns the LaTeX source typeset for formula.
func Document(formula string) string {
	return fmt.Sprintf(documentTemplate, formula)
}

// LaTeX renders through latex and dvipng.
type LaTeX struct {
	opts Options
	fg   colorful.Color
	run  process.Runner
	log  *zap.SugaredLogger
}

// NewLaTeX creates a renderer. A nil runner uses process.Exec.
func NewLaTeX(opts Options, run process.Runner) (*LaTeX, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	fg, _ := ParseColor(opts.Color)
	if run == nil {
		run = process.Exec{}
	}
	return &LaTeX{
		opts: opts,
		fg:   fg,
		run:  run,
		log:  logger.Logger.Named("typeset"),
	}, nil
}

// Options returns the settings in use.
func (r *LaTeX) Options() Options {
	return r.opts
}

// Resolution is the dvipng -D value: the output DPI scaled by the ratio of
// the requested font size to the document's body size.
func (r *LaTeX) Resolution() int {
	return int(math.Round(float64(r.opts.DPI) * r.opts.FontSize / baseFontSize))
}

// Render typesets formula in a scratch directory and returns the padded
// image.
func (r *LaTeX) Render(ctx context.Context, formula string) (image.Image, error) {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return nil, errors.Wrap(ErrRender, "empty formula")
	}
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp("", "mathclip-*")
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "create scratch directory"), ErrRender)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, texFile), []byte(Document(formula)), 0o600); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "write formula"), ErrRender)
	}

	latex := process.Command{
		Name: r.opts.LaTeX,
		Args: []string{"-interaction=nonstopmode", "-halt-on-error", texFile},
		Dir:  dir,
	}
	if err := r.exec(ctx, latex); err != nil {
		return nil, err
	}

	dvipng := process.Command{
		Name: r.opts.DVIPNG,
		Args: []string{
			"-q", "-T", "tight",
			"-bg", "Transparent",
			"-fg", dvipngColor(r.fg),
			"-D", strconv.Itoa(r.Resolution()),
			"-o", pngFile,
			dviFile,
		},
		Dir: dir,
	}
	if err := r.exec(ctx, dvipng); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, pngFile))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "read dvipng output"), ErrRender)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode dvipng output"), ErrRender)
	}
	return Pad(img, int(math.Round(r.opts.Pad*float64(r.opts.DPI)))), nil
}

func (r *LaTeX) exec(ctx context.Context, cmd process.Command) error {
	res, err := r.run.Run(ctx, cmd)
	r.log.Debugw("Ran typesetter",
		"command", cmd.String(),
		"exit", res.ExitCode,
		"duration", res.Duration)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, process.ErrNotFound):
		err = errors.WithHintf(err, "install a TeX distribution that provides %s, or set render.%s",
			cmd.Name, settingFor(cmd.Name, r.opts))
	case errors.Is(err, process.ErrExited):
		if msg := TeXError(res.Output()); msg != "" {
			err = errors.Newf("%s: %s", cmd.Name, msg)
		} else if out := res.Output(); out != "" {
			err = errors.WithDetail(err, out)
		}
	}
	return errors.Mark(err, ErrRender)
}

func settingFor(name string, opts Options) string {
	if name == opts.DVIPNG {
		return "dvipng"
	}
	return "latex"
}

// TeXError extracts the first TeX error message from a latex log: the line
// starting with "!" and the source line it points at, if any.
func TeXError(log string) string {
	var msg, where string
	sc := bufio.NewScanner(strings.NewReader(log))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case msg == "" && strings.HasPrefix(line, "!"):
			msg = strings.TrimSpace(strings.TrimPrefix(line, "!"))
		case msg != "" && strings.HasPrefix(line, "l."):
			where = line
		}
		if where != "" {
			break
		}
	}
	if msg == "" {
		return ""
	}
	msg = strings.TrimSuffix(msg, ".")
	if where != "" {
		return msg + " (" + where + ")"
	}
	return msg
}

// Pad returns img surrounded by a transparent margin of px pixels.
func Pad(img image.Image, px int) image.Image {
	if px <= 0 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()+2*px, b.Dy()+2*px))
	draw.Draw(dst, image.Rect(px, px, px+b.Dx(), px+b.Dy()), img, b.Min, draw.Src)
	return dst
}
