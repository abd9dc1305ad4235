package script

import (
	"errors"
	"fmt"
)

// Errors returned by the script host.
var (
	// ErrTimeout is returned when a script exceeds its time limit.
	ErrTimeout = errors.New("script timed out")

	// ErrClosed is returned when running on a closed host.
	ErrClosed = errors.New("script host is closed")
)

// Error is a failure while loading or running a script.
type Error struct {
	// Name is the chunk name, usually the file path.
	Name string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
