// Package mouse turns terminal mouse reports into press, release and drag
// actions.
//
// Terminals report the set of held buttons on every mouse event rather than
// discrete clicks. Tracker remembers the held button between reports so a
// press is seen once, however long the button stays down:
//
//	var t mouse.Tracker
//	ev := t.Update(mouse.Position{X: x, Y: y}, mouse.ButtonLeft)
//	if ev.IsClick() {
//	    label, ok := layout.HitTest(ev.Position.X, ev.Position.Y)
//	    ...
//	}
//
// Tracker is not safe for concurrent use; the event loop owns it.
package mouse
