package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLabel is returned by ParseEvent for text that names no keypad event.
var ErrUnknownLabel = errors.New("unknown keypad label")

// Kind identifies the type of an Event.
type Kind uint8

const (
	// KindNone is the zero Event; the engine ignores it.
	KindNone Kind = iota
	KindDigit
	KindDecimal
	KindOperator
	KindFunc
	KindEquals
	KindClear
	KindClearEntry
	KindBackspace
	KindToggleSign
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDigit:
		return "digit"
	case KindDecimal:
		return "decimal"
	case KindOperator:
		return "operator"
	case KindFunc:
		return "func"
	case KindEquals:
		return "equals"
	case KindClear:
		return "clear"
	case KindClearEntry:
		return "clear-entry"
	case KindBackspace:
		return "backspace"
	case KindToggleSign:
		return "toggle-sign"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Operator is a binary operator.
type Operator uint8

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
)

// Symbol returns the operator as written in the history line.
func (op Operator) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	case OpPower:
		return "^"
	default:
		return ""
	}
}

// String returns the operator name.
func (op Operator) String() string {
	switch op {
	case OpNone:
		return "none"
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	case OpPower:
		return "power"
	default:
		return fmt.Sprintf("Operator(%d)", op)
	}
}

// Func is a unary function applied in place to the current value.
type Func uint8

const (
	FnSquare Func = iota + 1
	FnCube
	FnSquareRoot
	FnCubeRoot
)

// String returns the function name.
func (f Func) String() string {
	switch f {
	case FnSquare:
		return "square"
	case FnCube:
		return "cube"
	case FnSquareRoot:
		return "sqrt"
	case FnCubeRoot:
		return "cbrt"
	default:
		return fmt.Sprintf("Func(%d)", f)
	}
}

// trace returns the history text for applying f to the formatted operand x.
func (f Func) trace(x string) string {
	switch f {
	case FnSquare:
		return "sqr(" + x + ")"
	case FnCube:
		return "cube(" + x + ")"
	case FnSquareRoot:
		return "√(" + x + ")"
	case FnCubeRoot:
		return "∛(" + x + ")"
	default:
		return ""
	}
}

// Event is a logical calculator input.
type Event struct {
	Kind  Kind
	Digit uint8    // KindDigit only
	Op    Operator // KindOperator only
	Fn    Func     // KindFunc only
}

// Digit returns the event for digit d. Values outside 0-9 yield the zero
// Event, which the engine ignores.
func Digit(d int) Event {
	if d < 0 || d > 9 {
		return Event{}
	}
	return Event{Kind: KindDigit, Digit: uint8(d)}
}

// Decimal returns the decimal point event.
func Decimal() Event { return Event{Kind: KindDecimal} }

// Op returns the event for a binary operator.
func Op(op Operator) Event { return Event{Kind: KindOperator, Op: op} }

// Fn returns the event for a unary function.
func Fn(f Func) Event { return Event{Kind: KindFunc, Fn: f} }

// Equals returns the equals event.
func Equals() Event { return Event{Kind: KindEquals} }

// Clear returns the clear-all event.
func Clear() Event { return Event{Kind: KindClear} }

// ClearEntry returns the clear-entry event.
func ClearEntry() Event { return Event{Kind: KindClearEntry} }

// Backspace returns the backspace event.
func Backspace() Event { return Event{Kind: KindBackspace} }

// ToggleSign returns the sign toggle event.
func ToggleSign() Event { return Event{Kind: KindToggleSign} }

// Label returns the keypad label of the event, e.g. "7", "×", "√x", "CE".
// It returns "" for events that have no key.
func (e Event) Label() string {
	switch e.Kind {
	case KindDigit:
		if e.Digit > 9 {
			return ""
		}
		return string(rune('0' + e.Digit))
	case KindDecimal:
		return "."
	case KindOperator:
		if e.Op == OpPower {
			return "xʸ"
		}
		return e.Op.Symbol()
	case KindFunc:
		switch e.Fn {
		case FnSquare:
			return "x²"
		case FnCube:
			return "x³"
		case FnSquareRoot:
			return "√x"
		case FnCubeRoot:
			return "∛x"
		}
		return ""
	case KindEquals:
		return "="
	case KindClear:
		return "C"
	case KindClearEntry:
		return "CE"
	case KindBackspace:
		return "⌫"
	case KindToggleSign:
		return "+/-"
	default:
		return ""
	}
}

// String returns the label, or the kind name for unlabelled events.
func (e Event) String() string {
	if l := e.Label(); l != "" {
		return l
	}
	return e.Kind.String()
}

// labelEvents maps keypad labels and their ASCII spellings to events.
var labelEvents = map[string]Event{
	".":    Decimal(),
	",":    Decimal(),
	"+":    Op(OpAdd),
	"-":    Op(OpSubtract),
	"−":    Op(OpSubtract),
	"×":    Op(OpMultiply),
	"*":    Op(OpMultiply),
	"x":    Op(OpMultiply),
	"÷":    Op(OpDivide),
	"/":    Op(OpDivide),
	"xʸ":   Op(OpPower),
	"xⁿ":   Op(OpPower),
	"^":    Op(OpPower),
	"x²":   Fn(FnSquare),
	"sqr":  Fn(FnSquare),
	"x³":   Fn(FnCube),
	"cube": Fn(FnCube),
	"√x":   Fn(FnSquareRoot),
	"√":    Fn(FnSquareRoot),
	"sqrt": Fn(FnSquareRoot),
	"∛x":   Fn(FnCubeRoot),
	"³√x":  Fn(FnCubeRoot),
	"∛":    Fn(FnCubeRoot),
	"cbrt": Fn(FnCubeRoot),
	"=":    Equals(),
	"C":    Clear(),
	"CE":   ClearEntry(),
	"⌫":    Backspace(),
	"BS":   Backspace(),
	"+/-":  ToggleSign(),
	"±":    ToggleSign(),
	"neg":  ToggleSign(),
}

// ParseEvent resolves a keypad label to its event.
// Digits "0" through "9" map to Digit events.
func ParseEvent(label string) (Event, error) {
	label = strings.TrimSpace(label)
	if len(label) == 1 && label[0] >= '0' && label[0] <= '9' {
		return Digit(int(label[0] - '0')), nil
	}
	if ev, ok := labelEvents[label]; ok {
		return ev, nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
}
