package typeset

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/integration/process"
)

// fakeTeX stands in for latex and dvipng. It records the commands and
// writes a small opaque PNG where dvipng would.
type fakeTeX struct {
	commands []process.Command
	source   string
	failTeX  string
}

func (f *fakeTeX) Run(_ context.Context, c process.Command) (process.Result, error) {
	f.commands = append(f.commands, c)
	switch c.Name {
	case "latex":
		if f.failTeX != "" {
			return process.Result{Stdout: []byte(f.failTeX), ExitCode: 1},
				errors.Mark(errors.New("latex exited with status 1"), process.ErrExited)
		}
		data, err := os.ReadFile(filepath.Join(c.Dir, texFile))
		if err != nil {
			return process.Result{}, err
		}
		f.source = string(data)
		return process.Result{}, os.WriteFile(filepath.Join(c.Dir, dviFile), []byte("dvi"), 0o600)
	case "dvipng":
		img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
		for y := 0; y < 2; y++ {
			for x := 0; x < 4; x++ {
				img.Set(x, y, color.NRGBA{A: 255})
			}
		}
		out, err := os.Create(filepath.Join(c.Dir, pngFile))
		if err != nil {
			return process.Result{}, err
		}
		defer out.Close()
		return process.Result{}, png.Encode(out, img)
	}
	return process.Result{ExitCode: -1}, errors.Mark(errors.New(c.Name), process.ErrNotFound)
}

func TestRenderRunsLatexThenDvipng(t *testing.T) {
	fake := &fakeTeX{}
	r, err := NewLaTeX(DefaultOptions(), fake)
	require.NoError(t, err)

	img, err := r.Render(context.Background(), `  \frac{a}{b} `)
	require.NoError(t, err)

	require.Len(t, fake.commands, 2)
	assert.Equal(t, "latex", fake.commands[0].Name)
	assert.Contains(t, fake.source, `$\frac{a}{b}$`)

	dvipng := fake.commands[1]
	assert.Equal(t, "dvipng", dvipng.Name)
	assert.Equal(t, []string{
		"-q", "-T", "tight",
		"-bg", "Transparent",
		"-fg", "rgb 0.000 0.000 0.000",
		"-D", "1500",
		"-o", pngFile,
		dviFile,
	}, dvipng.Args)
	assert.Equal(t, fake.commands[0].Dir, dvipng.Dir)

	// 0.05in at 300 dpi on each side.
	assert.Equal(t, image.Rect(0, 0, 4+30, 2+30), img.Bounds())
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a, "margin is transparent")
	_, _, _, a = img.At(15, 15).RGBA()
	assert.NotZero(t, a)

	_, err = os.Stat(dvipng.Dir)
	assert.True(t, os.IsNotExist(err), "scratch directory is removed")
}

func TestRenderColor(t *testing.T) {
	fake := &fakeTeX{}
	opts := DefaultOptions()
	opts.Color = "#336699"
	r, err := NewLaTeX(opts, fake)
	require.NoError(t, err)

	_, err = r.Render(context.Background(), "x")
	require.NoError(t, err)
	assert.Contains(t, fake.commands[1].Args, "rgb 0.200 0.400 0.600")
}

func TestRenderTeXError(t *testing.T) {
	fake := &fakeTeX{failTeX: "This is pdfTeX\n! Undefined control sequence.\n<recently read> \\foo\n\nl.5 $\\foo\n"}
	r, err := NewLaTeX(DefaultOptions(), fake)
	require.NoError(t, err)

	_, err = r.Render(context.Background(), `\foo`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRender))
	assert.Equal(t, `latex: Undefined control sequence (l.5 $\foo)`, err.Error())
	assert.Len(t, fake.commands, 1, "dvipng is not run after a latex failure")
}

func TestRenderMissingTool(t *testing.T) {
	opts := DefaultOptions()
	opts.LaTeX = "no-such-latex"
	r, err := NewLaTeX(opts, &fakeTeX{})
	require.NoError(t, err)

	_, err = r.Render(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrRender))
	assert.True(t, errors.Is(err, process.ErrNotFound))
	assert.Contains(t, errors.FlattenHints(err), "render.latex")
}

func TestRenderEmptyFormula(t *testing.T) {
	fake := &fakeTeX{}
	r, err := NewLaTeX(DefaultOptions(), fake)
	require.NoError(t, err)

	_, err = r.Render(context.Background(), "   ")
	assert.True(t, errors.Is(err, ErrRender))
	assert.Empty(t, fake.commands)
}

func TestResolution(t *testing.T) {
	opts := DefaultOptions()
	opts.DPI = 96
	opts.FontSize = 12
	r, err := NewLaTeX(opts, &fakeTeX{})
	require.NoError(t, err)
	assert.Equal(t, 115, r.Resolution())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"black", "rgb 0.000 0.000 0.000"},
		{"White", "rgb 1.000 1.000 1.000"},
		{"red", "rgb 1.000 0.000 0.000"},
		{"green", "rgb 0.000 0.502 0.000"},
		{" blue ", "rgb 0.000 0.000 1.000"},
		{"#ff8000", "rgb 1.000 0.502 0.000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dvipngColor(c))
		})
	}

	for _, bad := range []string{"", "purple", "#zzzzzz", "ff0000"} {
		_, err := ParseColor(bad)
		assert.True(t, errors.Is(err, ErrInvalidColor), bad)
	}
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	tests := map[string]func(*Options){
		"dpi":   func(o *Options) { o.DPI = 0 },
		"font":  func(o *Options) { o.FontSize = -1 },
		"pad":   func(o *Options) { o.Pad = -0.1 },
		"exe":   func(o *Options) { o.DVIPNG = "" },
		"color": func(o *Options) { o.Color = "mauve" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			o := DefaultOptions()
			mutate(&o)
			assert.Error(t, o.Validate())
			_, err := NewLaTeX(o, nil)
			assert.Error(t, err)
		})
	}
}

func TestTeXError(t *testing.T) {
	assert.Equal(t, "Missing $ inserted", TeXError("! Missing $ inserted.\n"))
	assert.Empty(t, TeXError("Output written on formula.dvi"))
}

func TestEncodePNG(t *testing.T) {
	img := Pad(image.NewNRGBA(image.Rect(0, 0, 3, 3)), 2)
	data, err := EncodePNG(img)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Width)
	assert.Equal(t, 7, cfg.Height)
}
