package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/pocketcalc/internal/engine"
)

// Application commands that can be bound alongside keypad labels.
const (
	ActionQuit = "app.quit"
)

// ErrUnknownAction is returned for bindings whose action is neither a keypad
// label nor an application command.
var ErrUnknownAction = errors.New("unknown action")

// commandActions lists the non-engine actions.
var commandActions = map[string]bool{
	ActionQuit: true,
}

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key specification that triggers this binding.
	// Formats: "7", "KP+", "Ctrl+C", "<C-c>"
	Keys string

	// Action is a keypad label or an application command.
	// An empty action unbinds the key.
	Action string

	// Description provides documentation for the binding.
	Description string
}

// IsCommand reports whether the binding triggers an application command
// rather than a calculator key.
func (b Binding) IsCommand() bool {
	return strings.HasPrefix(b.Action, "app.")
}

// Event returns the calculator event for a keypad binding.
func (b Binding) Event() (engine.Event, error) {
	return engine.ParseEvent(b.Action)
}

// ValidateAction checks that action is a keypad label or a known command.
// The empty action is valid and means "unbound".
func ValidateAction(action string) error {
	if action == "" || commandActions[action] {
		return nil
	}
	if strings.HasPrefix(action, "app.") {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if _, err := engine.ParseEvent(action); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return nil
}
