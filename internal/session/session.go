// Package session runs the interactive loop: read a line with the editor,
// typeset it, publish the image, report the result, repeat.
//
// Everything happens on the goroutine that calls Run. Other goroutines,
// such as the config watcher, talk to the session by posting interrupt
// events to the backend.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"go.uber.org/zap"

	"github.com/dshills/mathclip/internal/catalog"
	"github.com/dshills/mathclip/internal/clipboard"
	"github.com/dshills/mathclip/internal/editor"
	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/input/history"
	"github.com/dshills/mathclip/internal/input/key"
	"github.com/dshills/mathclip/internal/input/keymap"
	"github.com/dshills/mathclip/internal/logger"
	"github.com/dshills/mathclip/internal/renderer/backend"
	"github.com/dshills/mathclip/internal/typeset"
)

// maxTranscript bounds the remembered output lines.
const maxTranscript = 1000

// Settings are the parts of a session that can change while it runs.
type Settings struct {
	Prompt   string
	Color    string // shown in the banner
	Editor   editor.Options
	Keys     *keymap.Resolved
	Renderer typeset.Renderer
	Theme    editor.Theme
}

// ReloadFailed is posted instead of Settings when a changed configuration
// could not be loaded.
type ReloadFailed struct {
	Err error
}

type line struct {
	text  string
	style backend.Style
}

// Session is one interactive run.
type Session struct {
	id       string
	b        backend.Backend
	ed       *editor.Editor
	pub      clipboard.Publisher
	settings Settings

	transcript []line
	pasting    bool
	paste      strings.Builder

	log *zap.SugaredLogger
}

// New creates a session drawing on b. Settings.Keys and Settings.Renderer
// must be set.
func New(b backend.Backend, cat *catalog.Catalog, pub clipboard.Publisher, hist *history.History, s Settings) *Session {
	id := uuid.NewString()
	return &Session{
		id:       id,
		b:        b,
		ed:       editor.New(cat, s.Keys, hist, s.Editor),
		pub:      pub,
		settings: s,
		log:      logger.Named("session").With("session", id),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Banner is the first transcript line.
func (s *Session) Banner() string {
	next := "Ctrl+Space"
	if keys := s.settings.Keys.KeysFor(editor.ActionNextPlaceholder); len(keys) > 0 {
		next = keys[0]
	}
	return fmt.Sprintf("LaTeX CLI (color: %s) - TAB for Intellisense, %s to jump to next placeholder. Type 'exit' to quit.",
		s.settings.Color, next)
}

// Run initializes the backend and processes events until the user exits,
// input ends, or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	if err := s.b.Init(); err != nil {
		return err
	}
	defer s.b.Shutdown()

	stop := context.AfterFunc(ctx, func() {
		_ = s.b.PostInterrupt(ctx.Err())
	})
	defer stop()

	s.log.Infow("Session started", "color", s.settings.Color, "publisher", s.pub.Name())
	s.println(s.Banner(), s.settings.Theme.Message)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.draw()

		ev := s.b.PollEvent()
		switch ev.Type {
		case backend.EventKey:
			if s.pasting {
				s.collectPaste(ev.Key)
				continue
			}
			if s.handleKey(ctx, ev.Key) {
				s.log.Infow("Session ended")
				return nil
			}

		case backend.EventPaste:
			if ev.PasteStart {
				s.pasting = true
				s.paste.Reset()
				continue
			}
			s.pasting = false
			s.ed.InsertText(s.paste.String())

		case backend.EventInterrupt:
			s.handleInterrupt(ev.Data)

		case backend.EventClosed:
			s.log.Infow("Input closed")
			return nil
		}
	}
}

// handleKey applies k and reports whether the session should end.
func (s *Session) handleKey(ctx context.Context, k key.Event) bool {
	switch s.ed.HandleKey(k) {
	case editor.ResultSubmit:
		return s.submit(ctx)
	case editor.ResultCancel:
		s.println(s.settings.Prompt+s.ed.Text()+"^C", s.settings.Theme.Text)
		s.ed.Reset()
	case editor.ResultEOF:
		return true
	}
	return false
}

func (s *Session) collectPaste(k key.Event) {
	switch {
	case k.IsRune():
		s.paste.WriteRune(k.Rune)
	case k.Key == key.KeyTab:
		s.paste.WriteRune(' ')
	}
}

// submit handles an entered line and reports whether it was an exit
// command.
func (s *Session) submit(ctx context.Context) bool {
	text := s.ed.Text()
	s.println(s.settings.Prompt+text, s.settings.Theme.Text)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		s.ed.Reset()
		return false
	}
	s.ed.Submit()
	if IsExit(trimmed) {
		return true
	}

	s.draw()
	s.publish(ctx, text)
	return false
}

// IsExit reports whether line asks to leave the session.
func IsExit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit":
		return true
	}
	return false
}

func (s *Session) publish(ctx context.Context, formula string) {
	log := s.log.With("line", uuid.NewString())
	start := time.Now()

	img, err := s.settings.Renderer.Render(ctx, formula)
	if err != nil {
		log.Warnw("Render failed", "formula", formula, "error", err)
		s.printError(err)
		return
	}

	out, err := s.pub.Publish(ctx, img)
	if err != nil {
		log.Warnw("Publish failed",
			"publisher", s.pub.Name(),
			"unavailable", errors.Is(err, clipboard.ErrClipboardUnavailable),
			"error", err)
		s.printError(err)
		return
	}

	log.Infow("Formula published",
		"backend", out.Backend,
		"formats", out.Formats,
		"bytes", out.Size,
		"duration", time.Since(start))
	s.println(out.Message(), s.settings.Theme.Message)
}

func (s *Session) handleInterrupt(data any) {
	switch v := data.(type) {
	case Settings:
		s.apply(v)
		s.log.Infow("Settings reloaded", "color", s.settings.Color)
		s.println("Configuration reloaded", s.settings.Theme.Message)
	case ReloadFailed:
		s.log.Warnw("Settings reload failed", "error", v.Err)
		s.printError(errors.Wrap(v.Err, "reload configuration"))
	case error:
		// Posted when the run context is done; the loop checks ctx next.
	default:
		s.log.Debugw("Ignoring interrupt", "data", fmt.Sprintf("%T", data))
	}
}

// apply swaps in new settings. Missing keymap or renderer keep the current
// ones.
func (s *Session) apply(next Settings) {
	if next.Keys == nil {
		next.Keys = s.settings.Keys
	}
	if next.Renderer == nil {
		next.Renderer = s.settings.Renderer
	}
	s.settings = next
	s.ed.SetOptions(next.Editor)
	s.ed.SetKeymap(next.Keys)
}

func (s *Session) printError(err error) {
	s.println("Error: "+errors.UserMessage(err), s.settings.Theme.Error)
}

func (s *Session) println(text string, style backend.Style) {
	for _, l := range strings.Split(text, "\n") {
		s.transcript = append(s.transcript, line{text: l, style: style})
	}
	if n := len(s.transcript) - maxTranscript; n > 0 {
		s.transcript = append(s.transcript[:0], s.transcript[n:]...)
	}
}

// draw paints the transcript followed by the prompt line and menu. When
// they do not fit, the oldest transcript rows scroll off the top.
func (s *Session) draw() {
	width, height := s.b.Size()
	s.b.Clear()

	var rows []line
	for _, l := range s.transcript {
		for _, r := range wrap(l.text, width) {
			rows = append(rows, line{text: r, style: l.style})
		}
	}

	promptY := len(rows)
	if edRows := s.ed.Rows(); promptY+edRows > height {
		promptY = max(0, height-edRows)
	}
	first := len(rows) - promptY
	for y := 0; y < promptY; y++ {
		r := rows[first+y]
		editor.DrawText(s.b, 0, y, width, r.text, r.style)
	}

	s.ed.Draw(s.b, promptY, s.settings.Prompt, s.settings.Theme)
	s.b.Show()
}

// wrap splits text into rows of at most width display columns.
func wrap(text string, width int) []string {
	if width <= 0 || uniseg.StringWidth(text) <= width {
		return []string{text}
	}

	var rows []string
	var cur strings.Builder
	w := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		gw := g.Width()
		if w+gw > width && w > 0 {
			rows = append(rows, cur.String())
			cur.Reset()
			w = 0
		}
		cur.WriteString(g.Str())
		w += gw
	}
	return append(rows, cur.String())
}
