package app

import (
	"context"

	"github.com/dshills/mathclip/internal/catalog"
	"github.com/dshills/mathclip/internal/clipboard"
	"github.com/dshills/mathclip/internal/config"
	"github.com/dshills/mathclip/internal/input/history"
	"github.com/dshills/mathclip/internal/logger"
	"github.com/dshills/mathclip/internal/typeset"
)

// bootstrapper initializes components in dependency order and undoes the
// finished steps when a later one fails.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 5),
	}
}

func (b *bootstrapper) bootstrap(ctx context.Context) error {
	steps := []struct {
		name string
		init func(context.Context) error
	}{
		{"config", b.initConfig},
		{"logger", b.initLogger},
		{"catalog", b.initCatalog},
		{"typesetter", b.initTypesetter},
		{"clipboard", b.initClipboard},
	}

	for _, step := range steps {
		if err := step.init(ctx); err != nil {
			b.cleanup()
			return &InitError{Component: step.name, Err: err}
		}
		b.initOrder = append(b.initOrder, step.name)
	}
	return nil
}

func (b *bootstrapper) initConfig(context.Context) error {
	cfg, err := b.app.loadConfig()
	if err != nil {
		return err
	}
	b.app.cfg = cfg
	return nil
}

func (b *bootstrapper) initLogger(context.Context) error {
	lc := b.app.cfg.LoggerConfig()
	if b.opts.LogLevel != "" {
		lc.Level = b.opts.LogLevel
	}
	if err := logger.Initialize(lc); err != nil {
		return err
	}
	b.app.log = logger.Named("app")
	b.app.log.Infow("Configuration loaded", "path", b.app.cfg.Path, "color", b.app.cfg.Render.Color)
	return nil
}

func (b *bootstrapper) initCatalog(ctx context.Context) error {
	cat, err := catalog.Load(ctx, b.app.cfg.CatalogSources())
	if err != nil {
		return err
	}
	b.app.cat = cat
	b.app.hist = history.New(b.app.cfg.History.Size)
	b.app.log.Debugw("Catalog loaded", "symbols", cat.Len())
	return nil
}

func (b *bootstrapper) initTypesetter(context.Context) error {
	r, err := typeset.NewLaTeX(b.app.cfg.RenderOptions(), b.opts.Runner)
	if err != nil {
		return err
	}
	b.app.renderer = r
	return nil
}

func (b *bootstrapper) initClipboard(context.Context) error {
	pub, err := clipboard.New(b.app.cfg.ClipboardOptions(), b.opts.Runner)
	if err != nil {
		return err
	}
	b.app.publisher = pub
	b.app.log.Debugw("Clipboard selected", "backend", pub.Name())
	return nil
}

// cleanup undoes initialized steps in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		if b.initOrder[i] == "logger" {
			logger.Cleanup()
		}
	}
}

// applyOverrides applies command line settings on top of a loaded config.
func applyOverrides(cfg *config.Config, opts Options) error {
	if opts.Color != "" {
		cfg.Render.Color = opts.Color
		if _, err := typeset.ParseColor(opts.Color); err != nil {
			return err
		}
	}
	return nil
}
