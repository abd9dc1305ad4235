package mouse

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonWheel is any scroll wheel motion.
	ButtonWheel
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonWheel:
		return "wheel"
	default:
		return "none"
	}
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Event is one interpreted mouse report.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the button pressed, released or held.
	Button Button

	// Action is the type of mouse action.
	Action Action
}

// IsClick reports whether the event is a left-button press.
func (e Event) IsClick() bool {
	return e.Action == ActionPress && e.Button == ButtonLeft
}

// Tracker derives actions from successive button-state reports.
type Tracker struct {
	held    Button
	lastPos Position
}

// Update records a report of the buttons held at pos and returns the
// resulting action. Wheel reports are momentary and never held.
func (t *Tracker) Update(pos Position, buttons Button) Event {
	prev, prevPos := t.held, t.lastPos
	t.lastPos = pos

	if buttons == ButtonWheel {
		t.held = ButtonNone
		return Event{Position: pos, Button: ButtonWheel, Action: ActionPress}
	}
	t.held = buttons

	switch {
	case buttons == ButtonNone && prev == ButtonNone:
		return Event{Position: pos, Action: ActionMove}
	case buttons == ButtonNone:
		return Event{Position: pos, Button: prev, Action: ActionRelease}
	case buttons != prev:
		return Event{Position: pos, Button: buttons, Action: ActionPress}
	case !pos.Equal(prevPos):
		return Event{Position: pos, Button: buttons, Action: ActionDrag}
	default:
		return Event{Position: pos, Button: buttons, Action: ActionNone}
	}
}

// Held returns the button currently held down.
func (t *Tracker) Held() Button {
	return t.held
}

// Reset forgets the held button.
func (t *Tracker) Reset() {
	t.held = ButtonNone
}
