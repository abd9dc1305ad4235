package engine

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{2, "2"},
		{-15, "-15"},
		{2.5, "2.5"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1e15, "1000000000000000"},
		{1e16, "10000000000000000"},
		{1e21, "1000000000000000000000"},
		{123456789.125, "123456789.125"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{-1e21, "-1000000000000000000000"},
		{1.5e-7, "1.5e-07"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(ErrorValue()); got != ErrorText {
		t.Errorf("FormatValue(Error) = %q, want %q", got, ErrorText)
	}
	if got := FormatValue(Number(4)); got != "4" {
		t.Errorf("FormatValue(4) = %q, want %q", got, "4")
	}
}

func TestValue(t *testing.T) {
	if !checked(math.NaN()).IsError() {
		t.Error("NaN should be an error value")
	}
	if !checked(math.Inf(-1)).IsError() {
		t.Error("-Inf should be an error value")
	}
	if checked(1).IsError() {
		t.Error("1 should not be an error value")
	}
	if ErrorValue().Float() != 0 {
		t.Error("error value Float() should be 0")
	}
	if ErrorValue().IsZero() {
		t.Error("error value is not zero")
	}
	if !Number(math.Copysign(0, -1)).IsZero() {
		t.Error("negative zero should be zero")
	}
}
