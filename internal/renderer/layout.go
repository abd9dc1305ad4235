package renderer

import "github.com/dshills/pocketcalc/internal/renderer/core"

// Keypad is the button grid, row by row.
var Keypad = [5][5]string{
	{"xʸ", "x²", "CE", "C", "⌫"},
	{"x³", "7", "8", "9", "÷"},
	{"√x", "4", "5", "6", "×"},
	{"∛x", "1", "2", "3", "-"},
	{"+/-", "0", ".", "=", "+"},
}

// Layout limits.
const (
	displayHeight = 4
	gridColumns   = 5
	gridRows      = 5

	// MinWidth and MinHeight are the smallest terminal that fits the keypad.
	MinWidth  = 2 + gridColumns*4
	MinHeight = displayHeight + 1 + gridRows
)

// Button is one keypad key placed on screen.
type Button struct {
	Label string
	Class Class
	Rect  core.ScreenRect
}

// Layout is the computed screen geometry.
type Layout struct {
	Width, Height int
	Display       core.ScreenRect
	HistoryRow    int
	ResultRow     int
	Buttons       []Button
}

// classOf returns the color class of a keypad label.
func classOf(label string) Class {
	switch label {
	case "=":
		return ClassEquals
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		return ClassNumber
	default:
		return ClassOperator
	}
}

// ComputeLayout places the display and keypad in a width x height screen.
// Returns false if the screen is too small.
func ComputeLayout(width, height int) (Layout, bool) {
	if width < MinWidth || height < MinHeight {
		return Layout{Width: width, Height: height}, false
	}

	l := Layout{
		Width:      width,
		Height:     height,
		Display:    core.RectFromSize(0, 0, displayHeight, width),
		HistoryRow: 1,
		ResultRow:  2,
	}

	inner := width - 2
	colW := inner / gridColumns
	left := 1 + (inner-colW*gridColumns)/2

	gridTop := displayHeight + 1
	rowH := (height - gridTop) / gridRows
	btnH := rowH
	if rowH >= 2 {
		btnH = rowH - 1
	}

	for r, row := range Keypad {
		for c, label := range row {
			l.Buttons = append(l.Buttons, Button{
				Label: label,
				Class: classOf(label),
				Rect:  core.RectFromSize(gridTop+r*rowH, left+c*colW, btnH, colW-1),
			})
		}
	}
	return l, true
}

// HitTest returns the label of the button at (x, y).
func (l Layout) HitTest(x, y int) (string, bool) {
	pos := core.ScreenPos{Row: y, Col: x}
	for _, b := range l.Buttons {
		if b.Rect.Contains(pos) {
			return b.Label, true
		}
	}
	return "", false
}

// Button returns the placed button with the given label.
func (l Layout) Button(label string) (Button, bool) {
	for _, b := range l.Buttons {
		if b.Label == label {
			return b, true
		}
	}
	return Button{}, false
}
