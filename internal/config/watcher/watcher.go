// Package watcher reports changes to configuration files.
//
// Editors often save by writing a temporary file and renaming it over the
// original, so the watcher observes the parent directory and filters
// events by file name. Bursts of events for one file are coalesced into a
// single callback after a quiet period.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/logger"
)

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected. Handlers run on the
// watcher's timer goroutine.
type Handler func(event Event)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.Mutex

	fs *fsnotify.Watcher

	// Watched files, and how many of them live in each watched directory
	files map[string]struct{}
	dirs  map[string]int

	handlers []Handler

	// Debounce settings
	debounce time.Duration
	pending  map[string]*time.Timer
	seq      map[string]uint64

	running bool
	done    chan struct{}
	wg      sync.WaitGroup
	log     *zap.SugaredLogger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a new file watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}

	w := &Watcher{
		fs:       fsw,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
		seq:      make(map[string]uint64),
		done:     make(chan struct{}),
		log:      logger.Logger.Named("watcher"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file to the watch list. The file need not exist yet, but
// its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; ok {
		return nil
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			return errors.Wrapf(err, "watch %s", dir)
		}
	}
	w.dirs[dir]++
	w.files[abs] = struct{}{}
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; !ok {
		return nil
	}
	delete(w.files, abs)
	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.fs.Remove(dir)
	}
	return nil
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins delivering events.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.running = true
	w.wg.Add(1)
	go w.loop()
}

// Close stops the watcher and drops pending events.
func (w *Watcher) Close() error {
	w.mu.Lock()
	select {
	case <-w.done:
		w.mu.Unlock()
		return nil
	default:
	}
	close(w.done)
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.running = false
	w.mu.Unlock()

	err := w.fs.Close()
	w.wg.Wait()
	return err
}

// WatchedFiles returns the watched paths.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	return files
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			op, ok := convertOp(ev.Op)
			if !ok {
				continue
			}
			path := filepath.Clean(ev.Name)

			w.mu.Lock()
			_, watched := w.files[path]
			w.mu.Unlock()
			if !watched {
				continue
			}
			w.log.Debugw("Config watcher detected change", "file", path, "op", op.String())
			w.schedule(Event{Path: path, Op: op, Time: time.Now()})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Config watcher error", "error", err)
		}
	}
}

// schedule restarts the quiet period for event.Path. Only the last event
// of a burst is delivered.
func (w *Watcher) schedule(event Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t := w.pending[event.Path]; t != nil {
		t.Stop()
	}
	w.seq[event.Path]++
	current := w.seq[event.Path]

	w.pending[event.Path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stale := w.seq[event.Path] != current
		closed := false
		select {
		case <-w.done:
			closed = true
		default:
		}
		if stale || closed {
			w.mu.Unlock()
			return
		}
		delete(w.pending, event.Path)
		handlers := append([]Handler(nil), w.handlers...)
		w.mu.Unlock()

		for _, h := range handlers {
			w.safeCall(h, event)
		}
	})
}

func (w *Watcher) safeCall(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Errorw("Config watcher handler panicked", "file", event.Path, "panic", r)
		}
	}()
	h(event)
}

func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	default:
		return 0, false
	}
}
