// Package editor is the single-line formula editor: it routes key events to
// the buffer, auto-pairing, completion and placeholder navigation, and keeps
// the completion menu in step with the buffer.
package editor

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/dshills/mathclip/internal/catalog"
	"github.com/dshills/mathclip/internal/completion"
	"github.com/dshills/mathclip/internal/engine/autopair"
	"github.com/dshills/mathclip/internal/engine/buffer"
	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/input/history"
	"github.com/dshills/mathclip/internal/input/key"
	"github.com/dshills/mathclip/internal/input/keymap"
	"github.com/dshills/mathclip/internal/logger"
	"github.com/dshills/mathclip/internal/snippet"
)

// Options controls completion behavior.
type Options struct {
	// CompleteWhileTyping refreshes the menu after every edit. When false
	// the menu only opens on Tab.
	CompleteWhileTyping bool
	// EnterAccepts makes Enter accept the selected candidate while the
	// menu is open instead of submitting.
	EnterAccepts bool
	// MaxItems caps the visible menu rows.
	MaxItems int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{CompleteWhileTyping: true, MaxItems: 8}
}

// Editor edits one line at a time. It is not safe for concurrent use.
type Editor struct {
	buf     *buffer.Buffer
	cat     *catalog.Catalog
	keys    *keymap.Resolved
	hist    *history.History
	recall  *history.Cursor
	menu    completion.Menu
	opts    Options
	dismiss bool
	log     *zap.SugaredLogger
}

// New creates an editor over an empty line.
func New(cat *catalog.Catalog, keys *keymap.Resolved, hist *history.History, opts Options) *Editor {
	if hist == nil {
		hist = history.New(0)
	}
	e := &Editor{
		buf:    buffer.New(),
		cat:    cat,
		keys:   keys,
		hist:   hist,
		recall: history.NewCursor(hist),
		log:    logger.Named("editor"),
	}
	e.SetOptions(opts)
	return e
}

// SetOptions replaces the completion options.
func (e *Editor) SetOptions(opts Options) {
	e.opts = opts
	e.menu.MaxItems = opts.MaxItems
}

// SetKeymap replaces the key bindings.
func (e *Editor) SetKeymap(keys *keymap.Resolved) {
	e.keys = keys
}

// Text returns the line being edited.
func (e *Editor) Text() string {
	return e.buf.Text()
}

// State returns a snapshot of the line and cursor.
func (e *Editor) State() buffer.State {
	return e.buf.Snapshot()
}

// Menu returns the visible completion items and the selected row, or nil
// when the menu is closed.
func (e *Editor) Menu() ([]completion.Candidate, int) {
	return e.menu.Visible()
}

// Reset starts a new, empty line.
func (e *Editor) Reset() {
	e.buf.Reset("")
	e.menu.Close()
	e.recall.Reset()
	e.dismiss = false
}

// HandleKey applies one key event.
func (e *Editor) HandleKey(ev key.Event) Result {
	if b, ok := e.keys.Lookup(ev); ok {
		return e.Execute(b.Action)
	}
	if ev.IsChar() {
		e.insertRune(ev.Rune)
		e.afterEdit()
	}
	return ResultNone
}

// InsertText inserts pasted text at the cursor. Brackets are taken
// literally and non-printable runes, such as a trailing newline, dropped.
func (e *Editor) InsertText(s string) {
	text := strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
	if text == "" {
		return
	}
	e.dismiss = false
	if err := e.buf.InsertAt(e.buf.Cursor(), text); err != nil {
		e.abort("paste", err)
	}
	e.afterEdit()
}

// Execute runs a named action.
func (e *Editor) Execute(action string) Result {
	switch action {
	case ActionSubmit:
		if e.menu.Active && e.opts.EnterAccepts {
			e.accept()
			return ResultNone
		}
		e.menu.Close()
		return ResultSubmit
	case ActionCancel:
		e.menu.Close()
		return ResultCancel
	case ActionEOF:
		if e.buf.IsEmpty() {
			return ResultEOF
		}
		e.deleteRange(e.buf.Cursor(), e.buf.Cursor()+1)

	case ActionCompletionAccept:
		if e.menu.Active {
			e.accept()
			return ResultNone
		}
		e.dismiss = false
		e.menu.Refresh(e.cat, e.buf.Snapshot())
		return ResultNone
	case ActionCompletionCancel:
		e.menu.Close()
		e.dismiss = true
		return ResultNone
	case ActionCompletionNext:
		e.menu.Move(1)
		return ResultNone
	case ActionCompletionPrev:
		e.menu.Move(-1)
		return ResultNone

	case ActionHistoryOlder:
		if e.menu.Active {
			e.menu.Move(-1)
			return ResultNone
		}
		if line, ok := e.recall.Older(e.buf.Text()); ok {
			e.recallLine(line)
		}
		return ResultNone
	case ActionHistoryNewer:
		if e.menu.Active {
			e.menu.Move(1)
			return ResultNone
		}
		if line, ok := e.recall.Newer(); ok {
			e.recallLine(line)
		}
		return ResultNone

	// Motion closes the menu; only edits reopen it.
	case ActionNextPlaceholder:
		e.menu.Close()
		snippet.Advance(e.buf)
		return ResultNone
	case ActionCursorLeft:
		e.moveCursor(e.buf.Cursor() - 1)
		return ResultNone
	case ActionCursorRight:
		e.moveCursor(e.buf.Cursor() + 1)
		return ResultNone
	case ActionCursorLineStart:
		e.moveCursor(0)
		return ResultNone
	case ActionCursorLineEnd:
		e.moveCursor(e.buf.Len())
		return ResultNone

	case ActionDeleteBackward:
		e.deleteRange(e.buf.Cursor()-1, e.buf.Cursor())
	case ActionDeleteForward:
		e.deleteRange(e.buf.Cursor(), e.buf.Cursor()+1)
	case ActionDeleteToLineStart:
		e.deleteRange(0, e.buf.Cursor())
	case ActionDeleteToLineEnd:
		e.deleteRange(e.buf.Cursor(), e.buf.Len())
	case ActionDeleteWordBackward:
		e.deleteRange(e.wordStart(), e.buf.Cursor())

	default:
		e.log.Warnw("unknown action", "action", action)
		return ResultNone
	}

	e.afterEdit()
	return ResultNone
}

func (e *Editor) insertRune(r rune) {
	e.dismiss = false
	if autopair.IsOpener(r) {
		if _, err := autopair.Handle(e.buf, r); err != nil {
			e.abort("autopair", err)
		}
		return
	}
	if err := e.buf.InsertAt(e.buf.Cursor(), string(r)); err != nil {
		e.abort("insert", err)
	}
}

// deleteRange clamps to the buffer; deleting before the start or past the
// end of the line is a no-op rather than an error.
func (e *Editor) deleteRange(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > e.buf.Len() {
		end = e.buf.Len()
	}
	if start >= end {
		return
	}
	e.dismiss = false
	if err := e.buf.DeleteRange(start, end); err != nil {
		e.abort("delete", err)
	}
}

func (e *Editor) moveCursor(pos int) {
	e.menu.Close()
	if pos < 0 || pos > e.buf.Len() {
		return
	}
	if err := e.buf.MoveCursor(pos); err != nil {
		e.abort("move", err)
	}
}

// wordStart returns the start of the whitespace-delimited word before the
// cursor, including the spaces that follow it.
func (e *Editor) wordStart() int {
	s := e.buf.Snapshot()
	i := s.Cursor()
	for i > 0 {
		r, _ := s.RuneAt(i - 1)
		if !unicode.IsSpace(r) {
			break
		}
		i--
	}
	for i > 0 {
		r, _ := s.RuneAt(i - 1)
		if unicode.IsSpace(r) {
			break
		}
		i--
	}
	return i
}

func (e *Editor) accept() {
	if err := e.menu.Accept(e.buf); err != nil {
		if errors.Is(err, completion.ErrInvalidApplication) {
			e.log.Debugw("completion declined", "error", err)
		} else {
			e.abort("accept", err)
		}
	}
	// A plain name is still a live trigger; keep the menu shut until the
	// next edit so accepting does not reopen it.
	e.dismiss = true
}

func (e *Editor) recallLine(line string) {
	e.buf.Reset(line)
	e.menu.Close()
	e.dismiss = true
}

// afterEdit re-evaluates the trigger for the new buffer state.
func (e *Editor) afterEdit() {
	if e.dismiss || !(e.opts.CompleteWhileTyping || e.menu.Active) {
		e.menu.Close()
		return
	}
	e.menu.Refresh(e.cat, e.buf.Snapshot())
}

func (e *Editor) abort(op string, err error) {
	e.log.Errorw("edit aborted", "op", op, "error", err)
}

// Submit records the current line in history and starts a new one.
func (e *Editor) Submit() string {
	line := e.buf.Text()
	e.hist.Add(line)
	e.Reset()
	return line
}
