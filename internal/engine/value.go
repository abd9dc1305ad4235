package engine

import "math"

// Value is the calculator's current value: either a number or the Error marker.
// Callers must check IsError before using Float.
type Value struct {
	num float64
	err bool
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{num: f}
}

// ErrorValue returns the Error marker.
func ErrorValue() Value {
	return Value{err: true}
}

// IsError returns true if v is the Error marker.
func (v Value) IsError() bool {
	return v.err
}

// Float returns the numeric value. The result is 0 for the Error marker.
func (v Value) Float() float64 {
	if v.err {
		return 0
	}
	return v.num
}

// IsZero returns true for a numeric zero (either sign).
func (v Value) IsZero() bool {
	return !v.err && v.num == 0
}

// checked converts a raw arithmetic result into a Value.
// NaN and infinities have no display form and become the Error marker.
func checked(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrorValue()
	}
	return Number(f)
}
