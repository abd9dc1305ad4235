package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEnter, "Enter"},
		{KeyBackspace, "Backspace"},
		{KeyF12, "F12"},
		{KeyKP7, "KP7"},
		{KeyKPAdd, "KP+"},
		{KeyKPEnter, "KPEnter"},
		{KeyRune, "Rune"},
		{Key(999), "Key(999)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"Enter", KeyEnter},
		{"enter", KeyEnter},
		{"return", KeyEnter},
		{"ESC", KeyEscape},
		{"bs", KeyBackspace},
		{"Del", KeyDelete},
		{"kp+", KeyKPAdd},
		{"KPPlus", KeyKPAdd},
		{"KP.", KeyKPDecimal},
		{"kpenter", KeyKPEnter},
		{"f5", KeyF5},
		{"rune", KeyNone},
		{"bogus", KeyNone},
		{"", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeyClassification(t *testing.T) {
	if !KeyKP5.IsKeypadKey() || !KeyKPEnter.IsKeypadKey() || KeyEnter.IsKeypadKey() {
		t.Error("IsKeypadKey misclassified")
	}
	if !KeyF3.IsFunctionKey() || KeyKP3.IsFunctionKey() {
		t.Error("IsFunctionKey misclassified")
	}
	if KeyRune.IsSpecial() || KeyNone.IsSpecial() || !KeyEscape.IsSpecial() {
		t.Error("IsSpecial misclassified")
	}
}

func TestKeypadDigit(t *testing.T) {
	for d := 0; d <= 9; d++ {
		got, ok := (KeyKP0 + Key(d)).KeypadDigit()
		if !ok || got != d {
			t.Errorf("KP%d.KeypadDigit() = %d, %v", d, got, ok)
		}
	}
	if _, ok := KeyKPAdd.KeypadDigit(); ok {
		t.Error("KP+ should not be a keypad digit")
	}
}
