package engine

import (
	"math"
	"strconv"
)

// ErrorText is the display text of the Error state.
const ErrorText = "Error"

// plainMin is the smallest magnitude a fractional value is written out in
// plain decimal notation. Smaller fractions use the shortest exponent form.
const plainMin = 1e-4

// FormatValue renders v for the display.
func FormatValue(v Value) string {
	if v.IsError() {
		return ErrorText
	}
	return FormatNumber(v.Float())
}

// FormatNumber renders f in canonical form: integral values are written
// out digit for digit with no fractional part, other values use the
// shortest text that round-trips.
func FormatNumber(f float64) string {
	if f == 0 {
		// Collapse negative zero.
		return "0"
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	if math.Abs(f) < plainMin {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
