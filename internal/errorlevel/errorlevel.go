// Package errorlevel carries script-style status codes out of commands.
package errorlevel

import (
	"errors"
	"fmt"
)

const (
	// None means the operation succeeded.
	None = 0

	// Failure is the generic failure level.
	Failure = 1
)

// Error reports a non-zero ErrorLevel. Err, when set, explains the failure.
type Error struct {
	Level int
	Err   error
}

// New returns an Error with the given level and cause.
func New(level int, err error) *Error {
	return &Error{Level: level, Err: err}
}

// Newf returns a Failure-level Error with a formatted cause.
func Newf(format string, args ...any) *Error {
	return &Error{Level: Failure, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("errorlevel %d", e.Level)
	}

	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FromCount converts a failure count into an error. Zero failures is success.
func FromCount(failures int, what string) error {
	if failures == 0 {
		return nil
	}

	return &Error{Level: failures, Err: fmt.Errorf("%d %s failed", failures, what)}
}

// ExitCode maps err to a process exit code: nil is 0, an Error is its Level
// and anything else is Failure.
func ExitCode(err error) int {
	if err == nil {
		return None
	}

	var el *Error
	if errors.As(err, &el) {
		return el.Level
	}

	return Failure
}

// Silent reports whether err carries no message worth printing, as with a
// plain "not found" result.
func Silent(err error) bool {
	var el *Error
	return errors.As(err, &el) && el.Err == nil
}
