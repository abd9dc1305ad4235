// Package renderer draws the calculator in a terminal.
//
// The screen is a display panel (history line above a bold result line,
// both right-aligned) over a 5x5 keypad:
//
//	xʸ   x²  CE  C  ⌫
//	x³   7   8   9  ÷
//	√x   4   5   6  ×
//	∛x   1   2   3  -
//	+/-  0   .   =  +
//
// Layout and hit testing are pure functions of the screen size, so mouse
// clicks map back to the same labels the keyboard produces. Drawing goes
// through backend.Backend; tests use backend.NullBackend.
package renderer
