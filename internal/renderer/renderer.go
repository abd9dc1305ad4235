package renderer

import (
	"fmt"

	"github.com/dshills/pocketcalc/internal/engine"
	"github.com/dshills/pocketcalc/internal/renderer/backend"
	"github.com/dshills/pocketcalc/internal/renderer/core"
)

// Renderer draws calculator snapshots onto a backend.
//
// Renderer is not safe for concurrent use; the application's event loop
// owns it.
type Renderer struct {
	backend backend.Backend
	theme   Theme
	layout  Layout
	fits    bool

	pressed string
	flash   float64
}

// New creates a renderer sized to the backend.
func New(b backend.Backend, theme Theme) *Renderer {
	r := &Renderer{backend: b, theme: theme}
	r.Resize(b.Size())
	return r
}

// Resize recomputes the layout for a new screen size.
func (r *Renderer) Resize(width, height int) {
	r.layout, r.fits = ComputeLayout(width, height)
}

// Layout returns the current layout.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Fits reports whether the keypad fits on screen.
func (r *Renderer) Fits() bool {
	return r.fits
}

// HitTest maps a screen position to a keypad label.
func (r *Renderer) HitTest(x, y int) (string, bool) {
	if !r.fits {
		return "", false
	}
	return r.layout.HitTest(x, y)
}

// Press highlights the button with the given label at full strength.
func (r *Renderer) Press(label string) {
	r.pressed = label
	r.flash = 1
}

// Fade steps the pressed highlight toward the idle color.
// Returns true while a highlight remains.
func (r *Renderer) Fade() bool {
	if r.pressed == "" {
		return false
	}
	r.flash -= 0.5
	if r.flash <= 0 {
		r.pressed = ""
		r.flash = 0
		return false
	}
	return true
}

// Pressed returns the highlighted label and its strength.
func (r *Renderer) Pressed() (string, float64) {
	return r.pressed, r.flash
}

// Draw renders snap and flushes the screen.
func (r *Renderer) Draw(snap engine.Snapshot) {
	r.backend.Clear()
	if !r.fits {
		r.drawResizeHint()
		r.backend.Show()
		return
	}

	r.drawDisplay(snap)
	for _, b := range r.layout.Buttons {
		r.drawButton(b)
	}
	r.backend.Show()
}

func (r *Renderer) drawDisplay(snap engine.Snapshot) {
	t := r.theme
	r.backend.Fill(r.layout.Display, core.NewStyledCell(' ', core.NewStyle(t.Foreground, t.Display)))

	width := r.layout.Width - 2
	history := core.TruncateLeft(snap.History, width)
	r.drawRight(r.layout.HistoryRow, history, core.NewStyle(t.History, t.Display))

	fg := t.Foreground
	if snap.Error {
		fg = t.Error
	}
	result := core.TruncateLeft(snap.Display, width)
	r.drawRight(r.layout.ResultRow, result, core.NewStyle(fg, t.Display).Bold())
}

func (r *Renderer) drawButton(b Button) {
	idle, pressed := r.theme.colors(b.Class)
	bg := idle
	if b.Label == r.pressed {
		bg = idle.Blend(pressed, r.flash)
	}
	style := core.NewStyle(r.theme.Foreground, bg)
	if b.Class != ClassNumber {
		style = style.Bold()
	}

	r.backend.Fill(b.Rect, core.NewStyledCell(' ', style))
	w := core.StringWidth(b.Label)
	x := b.Rect.Left + (b.Rect.Width()-w)/2
	y := b.Rect.Top + b.Rect.Height()/2
	r.drawText(x, y, b.Label, style)
}

func (r *Renderer) drawResizeHint() {
	msg := fmt.Sprintf("Enlarge terminal to %dx%d", MinWidth, MinHeight)
	w := core.StringWidth(msg)
	x := max(0, (r.layout.Width-w)/2)
	r.drawText(x, r.layout.Height/2, msg, core.DefaultStyle())
}

// drawRight writes text so it ends one column before the right edge.
func (r *Renderer) drawRight(y int, text string, style core.Style) {
	x := r.layout.Width - 1 - core.StringWidth(text)
	r.drawText(x, y, text, style)
}

func (r *Renderer) drawText(x, y int, text string, style core.Style) {
	for _, ch := range text {
		cell := core.NewStyledCell(ch, style)
		if cell.Width == 0 {
			continue
		}
		r.backend.SetCell(x, y, cell)
		if cell.Width == 2 {
			r.backend.SetCell(x+1, y, core.ContinuationCell())
		}
		x += cell.Width
	}
}
