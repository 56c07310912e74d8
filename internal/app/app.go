package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/mathclip/internal/catalog"
	"github.com/dshills/mathclip/internal/clipboard"
	"github.com/dshills/mathclip/internal/config"
	"github.com/dshills/mathclip/internal/config/watcher"
	"github.com/dshills/mathclip/internal/editor"
	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/input/history"
	"github.com/dshills/mathclip/internal/integration/process"
	"github.com/dshills/mathclip/internal/logger"
	"github.com/dshills/mathclip/internal/renderer/backend"
	"github.com/dshills/mathclip/internal/session"
	"github.com/dshills/mathclip/internal/typeset"
)

// Options configure an Application.
type Options struct {
	// ConfigPath is an explicit config file. Empty uses the default
	// location when it exists.
	ConfigPath string

	// LogLevel overrides log.level when set.
	LogLevel string

	// Color overrides render.color when set.
	Color string

	// Watch reloads the config file while the session runs.
	Watch bool

	// Runner executes external tools. Nil uses process.Exec.
	Runner process.Runner
}

// Application owns the loaded configuration and the components built
// from it.
type Application struct {
	mu      sync.Mutex
	opts    Options
	running bool

	cfg       *config.Config
	cat       *catalog.Catalog
	hist      *history.History
	renderer  typeset.Renderer
	publisher clipboard.Publisher
	backend   backend.Backend
	watcher   *watcher.Watcher

	log *zap.SugaredLogger
}

// New loads configuration and builds every component.
func New(ctx context.Context, opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		log:  logger.Named("app"),
	}
	if err := newBootstrapper(app, opts).bootstrap(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Catalog returns the symbol catalog.
func (app *Application) Catalog() *catalog.Catalog {
	return app.cat
}

// Publisher returns the selected clipboard publisher.
func (app *Application) Publisher() clipboard.Publisher {
	return app.publisher
}

// Render typesets formula and publishes it once, outside the interactive
// session.
func (app *Application) Render(ctx context.Context, formula string) (clipboard.Outcome, error) {
	img, err := app.renderer.Render(ctx, formula)
	if err != nil {
		return clipboard.Outcome{}, err
	}
	return app.publisher.Publish(ctx, img)
}

// SetBackend sets the terminal the session draws on.
func (app *Application) SetBackend(b backend.Backend) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
}

// Run runs the interactive session until the user exits.
func (app *Application) Run(ctx context.Context) error {
	app.mu.Lock()
	if app.running {
		app.mu.Unlock()
		return ErrAlreadyRunning
	}
	if app.backend == nil {
		app.mu.Unlock()
		return ErrNoBackend
	}
	app.running = true
	b := app.backend
	app.mu.Unlock()

	defer func() {
		app.mu.Lock()
		app.running = false
		app.mu.Unlock()
	}()

	settings, err := app.settings(app.cfg, app.renderer)
	if err != nil {
		return err
	}
	sess := session.New(b, app.cat, app.publisher, app.hist, settings)

	if app.opts.Watch && app.cfg.Path != "" {
		if err := app.startWatcher(b); err != nil {
			app.log.Warnw("Config watcher unavailable", "path", app.cfg.Path, "error", err)
		} else {
			defer app.stopWatcher()
		}
	}

	app.log.Infow("Starting session", "session", sess.ID())
	return sess.Run(ctx)
}

// Shutdown releases resources. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.stopWatcher()
	logger.Cleanup()
}

func (app *Application) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg, app.opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// settings derives the session settings from cfg. A nil renderer builds a
// new one from cfg.
func (app *Application) settings(cfg *config.Config, r typeset.Renderer) (session.Settings, error) {
	keys, err := cfg.Keymap()
	if err != nil {
		return session.Settings{}, err
	}
	if r == nil {
		if r, err = typeset.NewLaTeX(cfg.RenderOptions(), app.opts.Runner); err != nil {
			return session.Settings{}, err
		}
	}
	return session.Settings{
		Prompt:   cfg.Prompt.Text,
		Color:    cfg.Render.Color,
		Editor:   cfg.EditorOptions(),
		Keys:     keys,
		Renderer: r,
		Theme:    editor.DefaultTheme(),
	}, nil
}

func (app *Application) startWatcher(b backend.Backend) error {
	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Watch(app.cfg.Path); err != nil {
		w.Close()
		return err
	}
	w.OnChange(func(ev watcher.Event) {
		app.reload(b, ev)
	})
	w.Start()

	app.mu.Lock()
	app.watcher = w
	app.mu.Unlock()
	return nil
}

func (app *Application) stopWatcher() {
	app.mu.Lock()
	w := app.watcher
	app.watcher = nil
	app.mu.Unlock()

	if w != nil {
		w.Close()
	}
}

// reload runs on the watcher goroutine. It builds the new settings and
// hands them to the session through the backend's event queue.
func (app *Application) reload(b backend.Backend, ev watcher.Event) {
	app.log.Infow("Reloading configuration", "file", ev.Path, "op", ev.Op.String())

	var payload any
	cfg, err := app.loadConfig()
	if err == nil {
		var s session.Settings
		if s, err = app.settings(cfg, nil); err == nil {
			payload = s
		}
	}
	if err != nil {
		payload = session.ReloadFailed{Err: err}
	}

	if err := b.PostInterrupt(payload); err != nil {
		app.log.Warnw("Dropped configuration reload", "error", errors.Wrap(err, "post reload"))
	}
}
