package engine

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// press feeds space-separated keypad labels to e and returns the last snapshot.
func press(t *testing.T, e *Engine, keys string) Snapshot {
	t.Helper()
	snap := e.Snapshot()
	for _, label := range strings.Fields(keys) {
		ev, err := ParseEvent(label)
		if err != nil {
			t.Fatalf("ParseEvent(%q): %v", label, err)
		}
		snap = e.HandleEvent(ev)
	}
	return snap
}

// ============================================================================
// Initial state
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	want := Snapshot{Display: "0"}
	if diff := cmp.Diff(want, e.Snapshot()); diff != "" {
		t.Errorf("initial snapshot mismatch (-want +got):\n%s", diff)
	}
	if e.Pending() != OpNone {
		t.Errorf("Pending() = %v, want none", e.Pending())
	}
	if e.HasDecimalPoint() {
		t.Error("new engine should not have a decimal point")
	}
}

// ============================================================================
// Key sequences
// ============================================================================

func TestSequences(t *testing.T) {
	tests := []struct {
		name    string
		keys    string
		display string
		history string
	}{
		// Digit entry
		{"single digit", "7", "7", ""},
		{"multi digit", "1 2 3", "123", ""},
		{"leading zeros dropped", "0 0 5", "5", ""},
		{"zero stays zero", "0 0 0", "0", ""},

		// Decimal point
		{"decimal", "1 . 5", "1.5", ""},
		{"decimal first", ". 5", "0.5", ""},
		{"trailing point shown", "1 .", "1.", ""},
		{"second point ignored", "1 . . 5", "1.5", ""},
		{"zero after point kept", "0 . 0 5", "0.05", ""},
		{"trailing zero kept", "2 . 5 0", "2.50", ""},

		// Binary operators
		{"add", "5 + 3 =", "8", "5 + 3 ="},
		{"subtract", "5 - 8 =", "-3", "5 - 8 ="},
		{"multiply", "6 × 7 =", "42", "6 × 7 ="},
		{"divide", "4 ÷ 2 =", "2", "4 ÷ 2 ="},
		{"power", "2 xʸ 1 0 =", "1024", "2 ^ 10 ="},
		{"ascii aliases", "6 * 7 =", "42", "6 × 7 ="},
		{"operator shows history", "5 +", "5", "5 + "},
		{"operator replaced", "5 + ×", "5", "5 × "},
		{"fractional result", "7 ÷ 2 =", "3.5", "7 ÷ 2 ="},
		{"decimal operands", "1 . 5 + 1 . 5 =", "3", "1.5 + 1.5 ="},
		{"equals reuses operand", "5 + =", "10", "5 + 5 ="},

		// Chaining
		{"chain intermediate", "5 + 3 +", "8", "8 + "},
		{"chain final", "5 + 3 + 2 =", "10", "8 + 2 ="},
		{"left to right", "2 + 3 × 4 =", "20", "5 × 4 ="},
		{"chain power", "2 xʸ 3 + 1 =", "9", "8 + 1 ="},

		// Zero guard
		{"operator on zero ignored", "×", "0", ""},
		{"subtract on zero allowed", "-", "0", "0 - "},
		{"negative via zero subtract", "- 5 =", "-5", "0 - 5 ="},

		// After a result
		{"digit overwrites result", "5 + 3 = 2", "2", ""},
		{"decimal overwrites result", "5 + 3 = . 5", "0.5", ""},
		{"operator continues result", "5 + 3 = × 2 =", "16", "8 × 2 ="},
		{"equals twice is no-op", "5 + 3 = =", "8", "5 + 3 ="},
		{"equals without operator", "5 =", "5", ""},

		// Unary functions
		{"square", "1 . 5 x²", "2.25", "sqr(1.5)"},
		{"cube", "3 x³", "27", "cube(3)"},
		{"square root", "9 √x", "3", "√(9)"},
		{"cube root negative", "8 +/- ∛x", "-2", "∛(-8)"},
		{"unary then operator", "5 + 9 √x =", "8", "5 + 3 ="},
		{"unary then chain", "5 + 9 √x +", "8", "8 + "},
		{"digit after unary appends", "9 √x 4", "34", "√(9)"},
		{"point after unary appends", "9 √x . 5", "3.5", "√(9)"},
		{"digit after unary on result starts fresh", "5 + 4 = √x 2", "2", ""},

		// Sign
		{"toggle sign", "5 +/-", "-5", ""},
		{"toggle twice", "5 +/- +/-", "5", ""},
		{"toggle then digits", "5 +/- 2", "-52", ""},
		{"toggle keeps history", "5 + 3 +/-", "-3", "5 + "},
		{"toggle result", "5 + 3 = +/-", "-8", "5 + 3 ="},
		{"negative operand math", "5 × 3 +/- =", "-15", "5 × -3 ="},

		// Backspace
		{"backspace digit", "1 2 3 ⌫", "12", ""},
		{"backspace keeps fraction", "1 2 . 3 4 ⌫", "1.34", ""},
		{"backspace single integer digit", "1 . 5 ⌫", "0.5", ""},
		{"backspace trailing point", "1 2 . ⌫", "1.", ""},
		{"backspace fraction after zero", "1 . 5 ⌫ ⌫", "0.", ""},
		{"backspace point", "1 . 5 ⌫ ⌫ ⌫", "0", ""},
		{"backspace then extend fraction", "1 2 . 3 4 ⌫ 5", "1.345", ""},
		{"backspace to zero", "7 ⌫", "0", ""},
		{"backspace floor", "7 ⌫ ⌫ ⌫", "0", ""},
		{"backspace negative", "5 +/- ⌫", "0", ""},
		{"backspace after result ignored", "5 + 3 = ⌫", "8", "5 + 3 ="},
		{"backspace computed value", "1 2 x² ⌫", "14", "sqr(12)"},
		{"backspace then append", "1 2 3 ⌫ 9", "129", ""},
		{"backspace after operator", "5 + ⌫ 3 =", "8", "5 + 3 ="},

		// Clear
		{"clear", "5 + 3 C", "0", ""},
		{"clear entry", "5 + 3 CE", "0", "5 + "},
		{"clear entry keeps chain", "5 + 3 CE 4 =", "9", "5 + 4 ="},
		{"clear then compute", "5 + 3 C 2 × 2 =", "4", "2 × 2 ="},

		// Errors
		{"divide by zero", "5 ÷ 0 =", "Error", ""},
		{"recover with digit", "5 ÷ 0 = 7", "7", ""},
		{"recover with decimal", "5 ÷ 0 = .", "0.", ""},
		{"intermediate divide by zero", "5 ÷ 0 -", "Error", ""},
		{"zero operand blocks operator", "5 ÷ 0 +", "0", "5 ÷ "},
		{"operator in error ignored", "5 ÷ 0 = +", "Error", ""},
		{"equals in error ignored", "5 ÷ 0 = =", "Error", ""},
		{"toggle in error ignored", "5 ÷ 0 = +/-", "Error", ""},
		{"unary in error ignored", "5 ÷ 0 = x²", "Error", ""},
		{"sqrt negative", "4 +/- √x", "Error", "√(-4)"},
		{"sqrt negative recovers", "4 +/- √x 2", "2", ""},
		{"power domain error", "8 +/- xʸ . 5 =", "Error", ""},
		{"power on zero result ignored", "2 - 2 = xʸ", "0", "2 - 2 ="},
		{"zero to negative power", "2 - 2 xʸ 1 +/- =", "Error", ""},
		{"backspace error", "5 ÷ 0 = ⌫", "0", ""},
		{"clear entry error", "5 ÷ 0 = CE", "0", ""},
		{"new computation after error", "5 ÷ 0 = 6 + 1 =", "7", "6 + 1 ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			snap := press(t, e, tt.keys)
			if snap.Display != tt.display {
				t.Errorf("display = %q, want %q", snap.Display, tt.display)
			}
			if snap.History != tt.history {
				t.Errorf("history = %q, want %q", snap.History, tt.history)
			}
		})
	}
}

func TestErrorStateResets(t *testing.T) {
	e := New()
	snap := press(t, e, "5 + 3 + 2 ÷ 0 =")
	if !snap.Error {
		t.Fatal("expected error state")
	}
	if snap.ResultPending {
		t.Error("error state should not be result-pending")
	}
	if e.Pending() != OpNone {
		t.Errorf("Pending() = %v, want none", e.Pending())
	}
	if !e.Value().IsError() {
		t.Error("Value() should be the error marker")
	}

	// Previous value is reset: "-" from zero computes against 0, not 10.
	snap = press(t, e, "4 - 1 =")
	if snap.Display != "3" {
		t.Errorf("display = %q, want %q", snap.Display, "3")
	}
}

func TestResultPendingFlag(t *testing.T) {
	e := New()
	snap := press(t, e, "5 + 3")
	if snap.ResultPending {
		t.Error("ResultPending before equals")
	}
	snap = press(t, e, "=")
	if !snap.ResultPending {
		t.Error("ResultPending should be set after equals")
	}
	snap = press(t, e, "×")
	if snap.ResultPending {
		t.Error("operator should break the pending result")
	}
}

func TestOperatorZeroGuard(t *testing.T) {
	e := New()
	press(t, e, "5 - 5 =")
	snap := press(t, e, "+")
	if snap.History != "5 - 5 =" {
		t.Errorf("operator on zero result changed history to %q", snap.History)
	}
	if e.Pending() != OpNone {
		t.Errorf("Pending() = %v, want none", e.Pending())
	}
}

func TestDigitLimit(t *testing.T) {
	e := New()
	snap := press(t, e, strings.Repeat("9 ", MaxDigits+4))
	if len(snap.Display) != MaxDigits {
		t.Errorf("display %q has %d digits, want %d", snap.Display, len(snap.Display), MaxDigits)
	}

	e = New()
	snap = press(t, e, ". "+strings.Repeat("1 ", MaxDigits+4))
	if got := len(strings.TrimPrefix(snap.Display, "0.")); got != MaxDigits-1 {
		t.Errorf("fraction has %d digits, want %d", got, MaxDigits-1)
	}
}

func TestInvalidDigitIgnored(t *testing.T) {
	e := New()
	press(t, e, "4")
	snap := e.HandleEvent(Digit(12))
	if snap.Display != "4" {
		t.Errorf("display = %q, want %q", snap.Display, "4")
	}
	snap = e.HandleEvent(Event{})
	if snap.Display != "4" {
		t.Errorf("zero event changed display to %q", snap.Display)
	}
}

func TestHasDecimalPoint(t *testing.T) {
	e := New()
	press(t, e, "1 .")
	if !e.HasDecimalPoint() {
		t.Error("expected decimal point after '.'")
	}
	press(t, e, "5 +")
	if e.HasDecimalPoint() {
		t.Error("operator should clear the decimal point")
	}
	press(t, e, "2 . 5 ⌫ ⌫")
	if e.HasDecimalPoint() {
		t.Error("backspacing the point should clear it")
	}
}

// ============================================================================
// LeadingMinusAsSign
// ============================================================================

func TestLeadingMinusAsSign(t *testing.T) {
	tests := []struct {
		keys    string
		display string
		history string
	}{
		{"-", "-0", ""},
		{"- 5", "-5", ""},
		{"- 5 + 3 =", "-2", "-5 + 3 ="},
		{"- -", "0", ""},
		{"- . 5", "-0.5", ""},
		{"5 - 5 = - 2", "-2", ""},
		{"5 - 3 =", "2", "5 - 3 ="},
		{"5 + -", "5", "5 - "},
	}

	for _, tt := range tests {
		e := New(WithLeadingMinusAsSign(true))
		snap := press(t, e, tt.keys)
		if snap.Display != tt.display || snap.History != tt.history {
			t.Errorf("%q: got (%q, %q), want (%q, %q)",
				tt.keys, snap.Display, snap.History, tt.display, tt.history)
		}
	}
}

// ============================================================================
// Properties
// ============================================================================

func TestSquareRootRoundTrip(t *testing.T) {
	inputs := []string{"0", "1", "2", "9", "0.25", "12.5", "1000000", "0.0001", "31415.9"}
	for _, in := range inputs {
		e := New()
		enterNumber(t, e, in)
		press(t, e, "√x x²")

		want, _ := strconv.ParseFloat(in, 64)
		got := e.Value().Float()
		if math.Abs(got-want) > 1e-9*math.Max(1, want) {
			t.Errorf("√(%s)² = %v, want %v", in, got, want)
		}
	}
}

func TestCubeRootTotal(t *testing.T) {
	for _, x := range []float64{-1000, -27, -8, -2.5, -1, -0.001, 0, 0.001, 1, 8, 27, 64.5} {
		e := New()
		enterNumber(t, e, strconv.FormatFloat(math.Abs(x), 'f', -1, 64))
		if x < 0 {
			press(t, e, "+/-")
		}
		snap := press(t, e, "∛x")
		if snap.Error {
			t.Errorf("∛(%v) entered error state", x)
			continue
		}
		got := e.Value().Float()
		if math.Abs(got*got*got-x) > 1e-9*math.Max(1, math.Abs(x)) {
			t.Errorf("∛(%v) = %v", x, got)
		}
	}
}

func TestSquareRootNegativeAlwaysErrors(t *testing.T) {
	for _, in := range []string{"1", "0.5", "4", "123456"} {
		e := New()
		enterNumber(t, e, in)
		snap := press(t, e, "+/- √x")
		if !snap.Error || snap.Display != ErrorText {
			t.Errorf("√(-%s) = %q, want Error", in, snap.Display)
		}
		if snap.History != "√(-"+in+")" {
			t.Errorf("history = %q, want %q", snap.History, "√(-"+in+")")
		}
	}
}

func TestOneThird(t *testing.T) {
	e := New()
	snap := press(t, e, "1 ÷ 3 =")
	if !strings.Contains(snap.Display, ".") {
		t.Errorf("display %q has no decimal point", snap.Display)
	}
	if snap.Display != strconv.FormatFloat(1.0/3.0, 'f', -1, 64) {
		t.Errorf("display = %q", snap.Display)
	}
}

func TestBackspaceReachesFloor(t *testing.T) {
	inputs := []string{"7", "123", "1.5", "0.0005", "98765.4321", "-42", "-0.5"}
	for _, in := range inputs {
		e := New()
		enterNumber(t, e, strings.TrimPrefix(in, "-"))
		if strings.HasPrefix(in, "-") {
			press(t, e, "+/-")
		}

		var snap Snapshot
		for i := 0; i < len(in)+1; i++ {
			snap = press(t, e, "⌫")
		}
		if snap.Display != "0" {
			t.Errorf("%s: display after backspacing = %q, want 0", in, snap.Display)
		}
		for i := 0; i < 3; i++ {
			snap = press(t, e, "⌫")
		}
		if snap.Display != "0" {
			t.Errorf("%s: extra backspaces moved display to %q", in, snap.Display)
		}
	}
}

func TestLargeIntegerDisplaysAllDigits(t *testing.T) {
	e := New()
	snap := press(t, e, "1 0 0 0 0 0 0 0 0 × 1 0 0 0 0 0 0 0 0 =")
	if snap.Display != "10000000000000000" {
		t.Fatalf("display = %q, want 10000000000000000", snap.Display)
	}
	if snap = press(t, e, "C 1 0 0 0 0 0 0 0 0 x² ⌫"); snap.Display != "1000000000000000" {
		t.Errorf("backspace on large result = %q, want 1000000000000000", snap.Display)
	}
}

func TestBackspaceExponentResets(t *testing.T) {
	e := New()
	press(t, e, ". 0 0 1 x² x²")
	if !strings.Contains(e.Snapshot().Display, "e-") {
		t.Fatalf("expected exponent form, got %q", e.Snapshot().Display)
	}
	snap := press(t, e, "⌫")
	if snap.Display != "0" {
		t.Errorf("display = %q, want 0", snap.Display)
	}
}

func TestOverflowIsError(t *testing.T) {
	e := New()
	snap := press(t, e, "1 0 0 0 0 0 0 0 0 0 x³ x³ x³ x³")
	if !snap.Error {
		t.Errorf("expected overflow to error, display %q", snap.Display)
	}
	if snap.History == "" {
		t.Error("unary overflow should keep its trace")
	}
}

// enterNumber types a plain decimal literal digit by digit.
func enterNumber(t *testing.T, e *Engine, s string) {
	t.Helper()
	for _, r := range s {
		if r == '.' {
			e.HandleEvent(Decimal())
			continue
		}
		e.HandleEvent(Digit(int(r - '0')))
	}
}
