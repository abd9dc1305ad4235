// Package batch drives the calculator from text input.
//
// Each input line is split on whitespace into tokens. A token is either a
// keypad label ("7", "+", "√x", "=", "C") or an ASCII alias accepted by
// engine.ParseEvent ("*", "/", "^", "sqrt"), or a number literal such as
// "12.5" that expands to its digit and decimal point presses. A literal
// with a leading "-" ("-3") is entered and then sign-toggled.
//
// After each line the runner writes the display, or one JSON object per
// line in FormatJSON:
//
//	{"session":"…","line":1,"input":"2 + 3 =","display":"5","history":"2 + 3 =","error":false}
//
// Blank lines and lines starting with "#" are skipped.
package batch
