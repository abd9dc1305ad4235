// Package engine provides the arithmetic input engine for pocketcalc.
//
// The engine is the state machine behind a pocket calculator's keypad. It
// turns a stream of logical key events (digits, the decimal point, binary
// operators, unary functions and control keys) into a running value, a
// human-readable history line, and the text shown on the main display.
//
// # Execution Model
//
// Arithmetic is immediate: there is no operator precedence. Pressing a second
// binary operator evaluates the pending one first, so "5 + 3 × 2 =" yields 16,
// not 11. Pressing "=" twice in a row does nothing the second time.
//
// # Errors
//
// The engine never returns an error and never panics across its public
// surface. Undefined arithmetic (division by zero, the square root of a
// negative number, a power with no real result) moves the engine into the
// Error state, rendered as the literal display text "Error". The next digit
// or decimal point starts a new computation.
//
// # Basic Usage
//
//	e := engine.New()
//	e.HandleEvent(engine.Digit(5))
//	e.HandleEvent(engine.Op(engine.OpAdd))
//	e.HandleEvent(engine.Digit(3))
//	snap := e.HandleEvent(engine.Equals())
//	// snap.Display == "8", snap.History == "5 + 3 ="
//
// # Thread Safety
//
// An Engine is not safe for concurrent use. Callers own a single Engine per
// display and feed it events from one goroutine.
package engine
