package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if Ctrl, Alt or Meta is held.
// Shift alone does not count for characters since it changes the character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Normalize returns the event in the form used for binding lookups:
// Shift is dropped from characters, and characters under Ctrl are lowercased.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		return e
	}
	n := e
	n.Modifiers = n.Modifiers.Without(ModShift)
	if n.Modifiers.Has(ModCtrl) {
		n.Rune = unicode.ToLower(n.Rune)
	}
	return n
}

// Spec returns the canonical specification string of the normalized event,
// e.g. "7", "C", "Ctrl+c", "KP+", "Shift+Tab". Parse(e.Spec()) yields e.Normalize().
func (e Event) Spec() string {
	n := e.Normalize()

	var name string
	if n.Key == KeyRune {
		name = string(n.Rune)
		if n.Rune == ' ' {
			name = "Space"
		}
	} else {
		name = n.Key.String()
	}

	if n.Modifiers == ModNone {
		return name
	}
	return n.Modifiers.String() + "+" + name
}

// String returns the canonical specification string.
func (e Event) String() string {
	return e.Spec()
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Normalize() == other.Normalize()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
