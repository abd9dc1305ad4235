package batch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/pocketcalc/internal/engine"
)

var (
	// ErrUnknownToken is returned for a token that is neither a label nor a number.
	ErrUnknownToken = errors.New("unknown token")

	// ErrLiteralTooLong is returned for a number with more digits than an
	// operand can hold.
	ErrLiteralTooLong = errors.New("number literal too long")
)

// Tokenize splits a line into tokens.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// Expand converts a token to the events it stands for.
func Expand(token string) ([]engine.Event, error) {
	if ev, err := engine.ParseEvent(token); err == nil {
		return []engine.Event{ev}, nil
	}

	negative := false
	lit := token
	if strings.HasPrefix(lit, "-") {
		negative = true
		lit = lit[1:]
	}
	if !isLiteral(lit) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
	if n := literalDigits(lit); n > engine.MaxDigits {
		return nil, fmt.Errorf("%w: %q has %d digits, max %d", ErrLiteralTooLong, token, n, engine.MaxDigits)
	}

	events := make([]engine.Event, 0, len(lit)+1)
	for i := 0; i < len(lit); i++ {
		if lit[i] == '.' {
			events = append(events, engine.Decimal())
			continue
		}
		events = append(events, engine.Digit(int(lit[i]-'0')))
	}
	if negative {
		events = append(events, engine.ToggleSign())
	}
	return events, nil
}

// isLiteral reports whether s is digits with at most one decimal point.
func isLiteral(s string) bool {
	if s == "" || s == "." {
		return false
	}
	point := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.':
			if point {
				return false
			}
			point = true
		case c < '0' || c > '9':
			return false
		}
	}
	return true
}

// literalDigits counts the digits lit occupies once typed: leading zeros of
// the integer part collapse and an empty integer part reads as "0".
func literalDigits(lit string) int {
	intPart, frac, _ := strings.Cut(lit, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	return len(intPart) + len(frac)
}

// ApplyLine feeds every token of line to e and returns the final snapshot.
// Processing stops at the first unknown token; events before it stay applied.
// observe, if non-nil, is called with each intermediate snapshot.
func ApplyLine(e *engine.Engine, line string, observe func(engine.Snapshot)) (engine.Snapshot, error) {
	snap := e.Snapshot()
	for _, tok := range Tokenize(line) {
		events, err := Expand(tok)
		if err != nil {
			return snap, err
		}
		for _, ev := range events {
			snap = e.HandleEvent(ev)
			if observe != nil {
				observe(snap)
			}
		}
	}
	return snap, nil
}
