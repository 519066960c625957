package script

import (
	"errors"
	"fmt"
)

var (
	// ErrExpectation is returned when a ks.expect call fails.
	ErrExpectation = errors.New("script: expectation failed")

	// ErrUnknownKey is raised by ks.key for names that are not keys.
	ErrUnknownKey = errors.New("script: unknown key")
)

// Error is a failed script run.
type Error struct {
	Script string

	// Err is the Go error raised by the failing ks call, if any.
	Err error

	// Lua is the error reported by the interpreter, including the location.
	Lua error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Lua)
}

// Unwrap returns the ks error and the interpreter error.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Lua}
	}
	return []error{e.Err, e.Lua}
}
