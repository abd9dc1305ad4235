package engine

import (
	"errors"
	"testing"
)

func TestParseEventLabels(t *testing.T) {
	tests := []struct {
		label string
		want  Event
	}{
		{"0", Digit(0)},
		{"9", Digit(9)},
		{".", Decimal()},
		{"+", Op(OpAdd)},
		{"-", Op(OpSubtract)},
		{"×", Op(OpMultiply)},
		{"*", Op(OpMultiply)},
		{"÷", Op(OpDivide)},
		{"/", Op(OpDivide)},
		{"xʸ", Op(OpPower)},
		{"^", Op(OpPower)},
		{"x²", Fn(FnSquare)},
		{"x³", Fn(FnCube)},
		{"√x", Fn(FnSquareRoot)},
		{"∛x", Fn(FnCubeRoot)},
		{"³√x", Fn(FnCubeRoot)},
		{"=", Equals()},
		{"C", Clear()},
		{"CE", ClearEntry()},
		{"⌫", Backspace()},
		{"+/-", ToggleSign()},
		{"±", ToggleSign()},
		{" 7 ", Digit(7)},
	}

	for _, tt := range tests {
		got, err := ParseEvent(tt.label)
		if err != nil {
			t.Errorf("ParseEvent(%q) error = %v", tt.label, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEvent(%q) = %+v, want %+v", tt.label, got, tt.want)
		}
	}
}

func TestParseEventUnknown(t *testing.T) {
	for _, label := range []string{"", "10", "%", "sin", "c"} {
		_, err := ParseEvent(label)
		if !errors.Is(err, ErrUnknownLabel) {
			t.Errorf("ParseEvent(%q) error = %v, want ErrUnknownLabel", label, err)
		}
	}
}

func TestDigitOutOfRange(t *testing.T) {
	for _, d := range []int{-1, 10, 256, 265} {
		if ev := Digit(d); ev != (Event{}) {
			t.Errorf("Digit(%d) = %+v, want zero Event", d, ev)
		}
	}

	e := New()
	e.HandleEvent(Digit(7))
	if snap := e.HandleEvent(Digit(256)); snap.Display != "7" {
		t.Errorf("Digit(256) changed display to %q", snap.Display)
	}
}

func TestLabelRoundTrip(t *testing.T) {
	events := []Event{
		Digit(0), Digit(5), Decimal(),
		Op(OpAdd), Op(OpSubtract), Op(OpMultiply), Op(OpDivide), Op(OpPower),
		Fn(FnSquare), Fn(FnCube), Fn(FnSquareRoot), Fn(FnCubeRoot),
		Equals(), Clear(), ClearEntry(), Backspace(), ToggleSign(),
	}
	for _, ev := range events {
		label := ev.Label()
		if label == "" {
			t.Errorf("%v has no label", ev.Kind)
			continue
		}
		back, err := ParseEvent(label)
		if err != nil {
			t.Errorf("ParseEvent(%q) error = %v", label, err)
			continue
		}
		if back != ev {
			t.Errorf("round trip %q = %+v, want %+v", label, back, ev)
		}
	}
}

func TestEventString(t *testing.T) {
	if got := (Event{}).String(); got != "none" {
		t.Errorf("zero Event String() = %q, want %q", got, "none")
	}
	if got := Op(OpPower).String(); got != "xʸ" {
		t.Errorf("power String() = %q, want %q", got, "xʸ")
	}
	if got := OpMultiply.Symbol(); got != "×" {
		t.Errorf("Symbol() = %q, want %q", got, "×")
	}
}
