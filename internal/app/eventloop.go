package app

import (
	"fmt"
	"time"

	"github.com/dshills/pocketcalc/internal/engine"
	"github.com/dshills/pocketcalc/internal/input/keymap"
	"github.com/dshills/pocketcalc/internal/input/mouse"
	"github.com/dshills/pocketcalc/internal/renderer/backend"
)

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	case backend.EventInterrupt:
		return app.handleInterrupt()
	default:
		return nil
	}
}

// handleResize processes terminal resize events.
func (app *Application) handleResize(ev backend.Event) error {
	app.renderer.Resize(ev.Width, ev.Height)
	app.logger.Debug("resize %dx%d fits=%t", ev.Width, ev.Height, app.renderer.Fits())
	return nil
}

// handleKeyEvent resolves a key through the keymap and runs its action.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	app.metrics.RecordKey()

	b, ok := app.keymaps.Lookup(ev.Key)
	if !ok {
		app.metrics.RecordUnbound()
		app.logger.Debug("unbound key %s", ev.Key)
		return nil
	}

	if b.IsCommand() {
		return app.runCommand(b)
	}

	calcEv, err := b.Event()
	if err != nil {
		return &ComponentError{Component: "keymap", Action: b.Keys, Err: err}
	}
	app.press(calcEv)
	return nil
}

// runCommand executes an application command binding.
func (app *Application) runCommand(b keymap.Binding) error {
	switch b.Action {
	case keymap.ActionQuit:
		return ErrQuit
	default:
		return &ComponentError{Component: "keymap", Action: b.Keys, Err: fmt.Errorf("%w: %s", ErrUnknownCommand, b.Action)}
	}
}

// handleMouseEvent treats a left-button press over a keypad button as a
// click. Holding or dragging does not repeat it.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	mev := app.mouse.Update(mouse.Position{X: ev.MouseX, Y: ev.MouseY}, mouseButton(ev.MouseButton))
	if !mev.IsClick() {
		return nil
	}

	label, ok := app.renderer.HitTest(mev.Position.X, mev.Position.Y)
	if !ok {
		return nil
	}
	calcEv, err := engine.ParseEvent(label)
	if err != nil {
		return &ComponentError{Component: "renderer", Action: "hit test", Err: err}
	}
	app.metrics.RecordClick()
	app.press(calcEv)
	return nil
}

func mouseButton(b backend.MouseButton) mouse.Button {
	switch b {
	case backend.MouseLeft:
		return mouse.ButtonLeft
	case backend.MouseMiddle:
		return mouse.ButtonMiddle
	case backend.MouseRight:
		return mouse.ButtonRight
	case backend.MouseWheel:
		return mouse.ButtonWheel
	default:
		return mouse.ButtonNone
	}
}

// handleInterrupt advances the pressed-button fade.
func (app *Application) handleInterrupt() error {
	if app.renderer.Fade() {
		app.scheduleFade()
	}
	return nil
}

// press feeds ev to the engine, records the tape and starts the highlight.
// Entering the Error state rings the bell.
func (app *Application) press(ev engine.Event) {
	t := StartTimer()
	wasError := app.snap.Error
	app.snap = app.engine.HandleEvent(ev)
	app.metrics.RecordEvent(t.Elapsed())
	app.logger.Debug("event %s -> %q", ev, app.snap.Display)

	if app.snap.Error && !wasError {
		app.backend.Beep()
	}

	if app.tape != nil {
		if _, err := app.tape.Observe(app.snap); err != nil {
			app.logger.Error("%v", &ComponentError{Component: "tape", Action: "record", Err: err})
		}
	}

	if label := ev.Label(); label != "" {
		app.renderer.Press(label)
		app.scheduleFade()
	}
}

// scheduleFade posts an interrupt after one flash interval.
func (app *Application) scheduleFade() {
	if app.flash < 0 {
		return
	}
	b := app.backend
	time.AfterFunc(app.flash, func() {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	})
}
