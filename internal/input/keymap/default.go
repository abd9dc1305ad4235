package keymap

import "strconv"

// Default returns the built-in keyboard layout.
//
// "c" and "C" clear only when pressed bare; Ctrl+C quits and Meta+C is left
// unbound so the platform copy shortcut never clears the calculator.
func Default() *Keymap {
	km := &Keymap{
		Name:     "default",
		Priority: PriorityDefault,
		Source:   "default",
	}

	for d := 0; d <= 9; d++ {
		label := strconv.Itoa(d)
		km.Bindings = append(km.Bindings,
			Binding{Keys: label, Action: label, Description: "Digit " + label},
			Binding{Keys: "KP" + label, Action: label, Description: "Digit " + label},
		)
	}

	km.Bindings = append(km.Bindings, []Binding{
		{Keys: ".", Action: ".", Description: "Decimal point"},
		{Keys: ",", Action: ".", Description: "Decimal point"},
		{Keys: "KP.", Action: ".", Description: "Decimal point"},

		{Keys: "+", Action: "+", Description: "Add"},
		{Keys: "KP+", Action: "+", Description: "Add"},
		{Keys: "-", Action: "-", Description: "Subtract"},
		{Keys: "KP-", Action: "-", Description: "Subtract"},
		{Keys: "*", Action: "×", Description: "Multiply"},
		{Keys: "x", Action: "×", Description: "Multiply"},
		{Keys: "KP*", Action: "×", Description: "Multiply"},
		{Keys: "/", Action: "÷", Description: "Divide"},
		{Keys: "KP/", Action: "÷", Description: "Divide"},
		{Keys: "^", Action: "xʸ", Description: "Power"},

		{Keys: "s", Action: "x²", Description: "Square"},
		{Keys: "u", Action: "x³", Description: "Cube"},
		{Keys: "r", Action: "√x", Description: "Square root"},
		{Keys: "t", Action: "∛x", Description: "Cube root"},

		{Keys: "=", Action: "=", Description: "Equals"},
		{Keys: "Enter", Action: "=", Description: "Equals"},
		{Keys: "KPEnter", Action: "=", Description: "Equals"},

		{Keys: "Backspace", Action: "⌫", Description: "Delete last digit"},
		{Keys: "Delete", Action: "CE", Description: "Clear entry"},
		{Keys: "c", Action: "C", Description: "Clear all"},
		{Keys: "C", Action: "C", Description: "Clear all"},

		{Keys: "_", Action: "+/-", Description: "Toggle sign"},
		{Keys: "n", Action: "+/-", Description: "Toggle sign"},

		{Keys: "Escape", Action: ActionQuit, Description: "Quit"},
		{Keys: "q", Action: ActionQuit, Description: "Quit"},
		{Keys: "Ctrl+C", Action: ActionQuit, Description: "Quit"},
	}...)

	return km
}

// NewDefaultRegistry returns a registry holding the default keymap and, when
// overrides is non-empty, the user layer built from it.
func NewDefaultRegistry(overrides map[string]string) (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(Default()); err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return r, nil
	}
	user, err := FromOverrides(overrides)
	if err != nil {
		return nil, err
	}
	if err := r.Register(user); err != nil {
		return nil, err
	}
	return r, nil
}
