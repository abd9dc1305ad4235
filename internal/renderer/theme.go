package renderer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/pocketcalc/internal/renderer/core"
)

// ErrUnknownThemeColor is returned when a theme override names no color slot.
var ErrUnknownThemeColor = errors.New("unknown theme color")

// Theme holds the calculator's colors.
type Theme struct {
	Display    core.Color // display panel background
	Foreground core.Color // button and result text
	History    core.Color // history line text
	Error      core.Color // result text in the Error state

	Number   core.Color // digit and decimal point keys
	Operator core.Color // operators, functions and editing keys
	Equals   core.Color // the "=" key

	NumberPressed   core.Color
	OperatorPressed core.Color
	EqualsPressed   core.Color
}

// pressedLift is how far a pressed key's background moves toward white.
const pressedLift = 0.15

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	number := core.MustHex("#505050")
	operator := core.MustHex("#3b3b3b")
	equals := core.MustHex("#77b6ea")
	return Theme{
		Display:         core.MustHex("#2b2b2b"),
		Foreground:      core.MustHex("#ffffff"),
		History:         core.MustHex("#808080"),
		Error:           core.MustHex("#ff6b6b"),
		Number:          number,
		Operator:        operator,
		Equals:          equals,
		NumberPressed:   number.Lighten(pressedLift),
		OperatorPressed: operator.Lighten(pressedLift),
		EqualsPressed:   equals.Lighten(pressedLift),
	}
}

// slots maps configuration names to theme fields.
func (t *Theme) slots() map[string]*core.Color {
	return map[string]*core.Color{
		"display":          &t.Display,
		"foreground":       &t.Foreground,
		"history":          &t.History,
		"error":            &t.Error,
		"number":           &t.Number,
		"operator":         &t.Operator,
		"equals":           &t.Equals,
		"number_pressed":   &t.NumberPressed,
		"operator_pressed": &t.OperatorPressed,
		"equals_pressed":   &t.EqualsPressed,
	}
}

// ThemeColorNames returns the names accepted by Set, sorted.
func ThemeColorNames() []string {
	var t Theme
	names := make([]string, 0, len(t.slots()))
	for name := range t.slots() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set assigns the named color from a hex string.
func (t *Theme) Set(name, hex string) error {
	slot, ok := t.slots()[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownThemeColor, name)
	}
	c, err := core.ColorFromHex(hex)
	if err != nil {
		return fmt.Errorf("theme %s: %w", name, err)
	}
	*slot = c
	return nil
}

// Apply sets every color in overrides, stopping at the first error.
func (t *Theme) Apply(overrides map[string]string) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := t.Set(name, overrides[name]); err != nil {
			return err
		}
	}
	return nil
}

// Class groups keypad buttons that share colors.
type Class int

const (
	ClassNumber Class = iota
	ClassOperator
	ClassEquals
)

// colors returns the idle and pressed background for a class.
func (t Theme) colors(c Class) (idle, pressed core.Color) {
	switch c {
	case ClassNumber:
		return t.Number, t.NumberPressed
	case ClassEquals:
		return t.Equals, t.EqualsPressed
	default:
		return t.Operator, t.OperatorPressed
	}
}
