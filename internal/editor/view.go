package editor

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/mathclip/internal/completion"
	"github.com/dshills/mathclip/internal/renderer/backend"
)

// Theme holds the styles used to draw the line and its menu.
type Theme struct {
	Prompt       backend.Style
	Text         backend.Style
	Menu         backend.Style
	MenuSelected backend.Style
	Meta         backend.Style

	// Message and Error style transcript lines printed by the session.
	Message backend.Style
	Error   backend.Style
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	menuBg := backend.MustHex("#3a3a3a")
	accent := backend.MustHex("#5f87af")
	return Theme{
		Prompt:       backend.StyleDefault.WithBold(true),
		Text:         backend.StyleDefault,
		Menu:         backend.StyleDefault.WithBackground(menuBg),
		MenuSelected: backend.StyleDefault.WithBackground(accent).WithForeground(backend.MustHex("#ffffff")),
		Meta:         backend.StyleDefault.WithBackground(menuBg).WithForeground(accent.Blend(backend.MustHex("#ffffff"), 0.4)),
		Message:      backend.StyleDefault,
		Error:        backend.StyleDefault.WithForeground(backend.MustHex("#d75f5f")),
	}
}

// Rows returns how many screen rows Draw will use.
func (e *Editor) Rows() int {
	items, _ := e.menu.Visible()
	return 1 + len(items)
}

// Draw renders prompt and line on row y and the completion menu below it,
// scrolling the line horizontally to keep the cursor visible.
func (e *Editor) Draw(b backend.Backend, y int, prompt string, th Theme) {
	width, _ := b.Size()
	s := e.buf.Snapshot()

	cursorX := uniseg.StringWidth(prompt + s.Slice(0, s.Cursor()))
	scroll := 0
	if cursorX >= width {
		scroll = cursorX - width + 1
	}

	clearRow(b, y, width)
	x := DrawText(b, -scroll, y, width, prompt, th.Prompt)
	DrawText(b, x, y, width, s.Text(), th.Text)
	b.ShowCursor(cursorX-scroll, y)

	items, selected := e.menu.Visible()
	if len(items) == 0 {
		return
	}
	menuX := cursorX - scroll
	if span, ok := completion.TriggerSpan(s); ok {
		menuX = uniseg.StringWidth(prompt+s.Slice(0, span.Start-1)) - scroll
	}
	e.drawMenu(b, menuX, y+1, width, items, selected, th)
}

func (e *Editor) drawMenu(b backend.Backend, x, y, width int, items []completion.Candidate, selected int, th Theme) {
	labelW, metaW := 0, 0
	for _, c := range items {
		labelW = max(labelW, uniseg.StringWidth(c.Label))
		metaW = max(metaW, uniseg.StringWidth(c.Meta))
	}
	menuW := labelW + 2
	if metaW > 0 {
		menuW += metaW + 1
	}
	if x+menuW > width {
		x = width - menuW
	}
	x = max(x, 0)

	for i, c := range items {
		row := y + i
		style, meta := th.Menu, th.Meta
		if i == selected {
			style, meta = th.MenuSelected, th.MenuSelected
		}
		for col := x; col < x+menuW && col < width; col++ {
			b.SetCell(col, row, ' ', style)
		}
		DrawText(b, x+1, row, width, c.Label, style)
		if c.Meta != "" {
			DrawText(b, x+labelW+2, row, width, c.Meta, meta)
		}
	}
}

// DrawText draws s from column x on row y, clipping at width, and returns
// the column after the last grapheme. Wide graphemes occupy their full
// width; columns left of zero are skipped.
func DrawText(b backend.Backend, x, y, width int, s string, style backend.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		rs := g.Runes()
		w := g.Width()
		if x >= 0 && x+w <= width {
			b.SetCell(x, y, rs[0], style)
		}
		x += w
	}
	return x
}

func clearRow(b backend.Backend, y, width int) {
	for x := 0; x < width; x++ {
		b.SetCell(x, y, ' ', backend.StyleDefault)
	}
}
