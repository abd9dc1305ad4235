package key

import (
	"fmt"
	"strings"
)

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Keypad keys
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPAdd
	KeyKPSubtract
	KeyKPMultiply
	KeyKPDivide
	KeyKPDecimal
	KeyKPEnter

	// KeyRune is used for character keys (digits, letters, punctuation).
	// The actual character is stored in Event.Rune.
	KeyRune
)

// keyNames holds the canonical name of every named key.
var keyNames = [...]string{
	KeyNone:       "None",
	KeyEscape:     "Escape",
	KeyEnter:      "Enter",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeyDelete:     "Delete",
	KeyInsert:     "Insert",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyUp:         "Up",
	KeyDown:       "Down",
	KeyLeft:       "Left",
	KeyRight:      "Right",
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
	KeyF5:         "F5",
	KeyF6:         "F6",
	KeyF7:         "F7",
	KeyF8:         "F8",
	KeyF9:         "F9",
	KeyF10:        "F10",
	KeyF11:        "F11",
	KeyF12:        "F12",
	KeyKP0:        "KP0",
	KeyKP1:        "KP1",
	KeyKP2:        "KP2",
	KeyKP3:        "KP3",
	KeyKP4:        "KP4",
	KeyKP5:        "KP5",
	KeyKP6:        "KP6",
	KeyKP7:        "KP7",
	KeyKP8:        "KP8",
	KeyKP9:        "KP9",
	KeyKPAdd:      "KP+",
	KeyKPSubtract: "KP-",
	KeyKPMultiply: "KP*",
	KeyKPDivide:   "KP/",
	KeyKPDecimal:  "KP.",
	KeyKPEnter:    "KPEnter",
	KeyRune:       "Rune",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial returns true if this is a special (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyKP0 && k <= KeyKPEnter
}

// KeypadDigit returns the digit of a keypad digit key.
func (k Key) KeypadDigit() (int, bool) {
	if k >= KeyKP0 && k <= KeyKP9 {
		return int(k - KeyKP0), true
	}
	return 0, false
}

// keyAliases maps extra spellings (lowercase) to keys.
var keyAliases = map[string]Key{
	"esc":      KeyEscape,
	"return":   KeyEnter,
	"cr":       KeyEnter,
	"bs":       KeyBackspace,
	"del":      KeyDelete,
	"ins":      KeyInsert,
	"pgup":     KeyPageUp,
	"pgdn":     KeyPageDown,
	"kpplus":   KeyKPAdd,
	"kpminus":  KeyKPSubtract,
	"kpstar":   KeyKPMultiply,
	"kpslash":  KeyKPDivide,
	"kppoint":  KeyKPDecimal,
	"kpreturn": KeyKPEnter,
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" || name == "rune" {
		return KeyNone
	}
	for k, n := range keyNames {
		if strings.ToLower(n) == name {
			return Key(k)
		}
	}
	if k, ok := keyAliases[name]; ok {
		return k
	}
	return KeyNone
}
