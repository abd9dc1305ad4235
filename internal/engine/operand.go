package engine

import (
	"strconv"
	"strings"
)

// MaxDigits is the maximum number of digits an operand can hold.
// Digits beyond float64 precision would be silently lost, so they are refused.
const MaxDigits = 16

// operand is a number under construction on the keypad.
// The text form is kept explicitly so that "1.", "0.50" and "-0" display as typed.
type operand struct {
	intDigits  string // never empty, no leading zeros except a lone "0"
	fracDigits string
	point      bool
	negative   bool
}

// zeroOperand returns an operand reading "0".
func zeroOperand() operand {
	return operand{intDigits: "0"}
}

// digitOperand returns an operand holding the single digit d.
func digitOperand(d byte) operand {
	return operand{intDigits: string('0' + d)}
}

// pointOperand returns an operand reading "0.".
func pointOperand() operand {
	return operand{intDigits: "0", point: true}
}

// parseOperand converts a plain decimal string ("-12.5", "3", "0.") back into
// an operand. Exponent forms and anything else are rejected.
func parseOperand(s string) (operand, bool) {
	var o operand
	if strings.HasPrefix(s, "-") {
		o.negative = true
		s = s[1:]
	}
	intPart, fracPart, hasPoint := strings.Cut(s, ".")
	if intPart == "" || !allDigits(intPart) || !allDigits(fracPart) {
		return operand{}, false
	}
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	o.intDigits = intPart
	o.fracDigits = fracPart
	o.point = hasPoint
	return o, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// digitCount returns the number of significant positions in use.
func (o operand) digitCount() int {
	return len(o.intDigits) + len(o.fracDigits)
}

// appendDigit adds d to the end of the operand. Returns false when the
// operand is full.
func (o *operand) appendDigit(d byte) bool {
	if o.point {
		if o.digitCount() >= MaxDigits {
			return false
		}
		o.fracDigits += string('0' + d)
		return true
	}
	if o.intDigits == "0" {
		o.intDigits = string('0' + d)
		return true
	}
	if o.digitCount() >= MaxDigits {
		return false
	}
	o.intDigits += string('0' + d)
	return true
}

// appendPoint adds a decimal point if the operand has none.
func (o *operand) appendPoint() {
	o.point = true
}

// backspace edits the operand from the integer side. With a point, the last
// integer digit goes and the fraction is kept; a lone integer digit becomes
// "0". Once the integer part is "0" the fraction is trimmed from the end,
// then the point, so repeated backspaces always reach "0".
func (o *operand) backspace() {
	switch {
	case o.point && o.intDigits != "0":
		if len(o.intDigits) > 1 {
			o.intDigits = o.intDigits[:len(o.intDigits)-1]
		} else {
			o.intDigits = "0"
		}
	case o.point && o.fracDigits != "":
		o.fracDigits = o.fracDigits[:len(o.fracDigits)-1]
	case o.point:
		*o = zeroOperand()
	case len(o.intDigits) > 1:
		o.intDigits = o.intDigits[:len(o.intDigits)-1]
	default:
		*o = zeroOperand()
	}
}

// negate flips the operand's sign.
func (o *operand) negate() {
	o.negative = !o.negative
}

// String returns the operand exactly as it should be displayed.
func (o operand) String() string {
	var sb strings.Builder
	if o.negative {
		sb.WriteByte('-')
	}
	sb.WriteString(o.intDigits)
	if o.point {
		sb.WriteByte('.')
		sb.WriteString(o.fracDigits)
	}
	return sb.String()
}

// float parses the operand into a number.
func (o operand) float() float64 {
	s := o.intDigits
	if o.fracDigits != "" {
		s += "." + o.fracDigits
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Unreachable for operands built by this package.
		return 0
	}
	if o.negative {
		f = -f
	}
	return f
}
