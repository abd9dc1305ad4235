package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a normalized Event.
//
// Supported formats:
//   - Single character: "7", "c", "C", "+", "^"
//   - Named keys: "Enter", "Escape", "Backspace", "Delete", "Space"
//   - Keypad keys: "KP0".."KP9", "KP+", "KP-", "KP*", "KP/", "KP.", "KPEnter"
//   - With modifiers: "Ctrl+C", "Alt+Enter", "Ctrl++", "Ctrl+KP+"
//   - Bracketed short form: "<C-c>", "<A-x>", "<M-c>", "<CR>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	if ev, ok := parseKey(spec, ModNone); ok {
		return ev, nil
	}

	// Try each "+" as the boundary between modifiers and key. The key part
	// may itself contain "+" ("Ctrl++", "Ctrl+KP+").
	for i := 1; i < len(spec)-1; i++ {
		if spec[i] != '+' {
			continue
		}
		mods, ok := parseModifierList(spec[:i], "+")
		if !ok {
			continue
		}
		if ev, ok := parseKey(spec[i+1:], mods); ok {
			return ev, nil
		}
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseBracketed parses the inside of "<C-c>" style notation.
func parseBracketed(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if ev, ok := parseKey(inner, ModNone); ok {
		return ev, nil
	}
	for i := 1; i < len(inner)-1; i++ {
		if inner[i] != '-' {
			continue
		}
		mods, ok := parseShortModifiers(inner[:i])
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier in <%s>", ErrInvalidSpec, inner)
		}
		if ev, ok := parseKey(inner[i+1:], mods); ok {
			return ev, nil
		}
	}
	return Event{}, fmt.Errorf("%w: <%s>", ErrInvalidSpec, inner)
}

func parseModifierList(s, sep string) (Modifier, bool) {
	var mods Modifier
	for _, part := range strings.Split(s, sep) {
		mod := ModifierFromName(part)
		if mod == ModNone {
			return ModNone, false
		}
		mods = mods.With(mod)
	}
	return mods, true
}

func parseShortModifiers(s string) (Modifier, bool) {
	var mods Modifier
	for _, part := range strings.Split(s, "-") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m", "d":
			mods = mods.With(ModMeta)
		default:
			return ModNone, false
		}
	}
	return mods, true
}

// parseKey resolves a key name or single character.
func parseKey(s string, mods Modifier) (Event, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Event{}, false
	}
	if strings.EqualFold(s, "space") {
		return NewRuneEvent(' ', mods).Normalize(), true
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return NewRuneEvent(r, mods).Normalize(), true
	}
	if k := KeyFromName(s); k != KeyNone {
		return NewSpecialEvent(k, mods), true
	}
	return Event{}, false
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	ev, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return ev.Spec(), nil
}
