// Package apperr defines the error kinds every stage of the potd pipeline
// reports, and the single mapping from a final error to a process exit code.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Callers classify failures with errors.Is against these values.
var (
	ErrInvalidSeed   = errors.New("invalid seed")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidRange  = errors.New("invalid range")
	ErrGeneration    = errors.New("generation failed")
	ErrSerialization = errors.New("serialization failed")
	ErrSink          = errors.New("output failed")
	ErrDateFormat    = errors.New("invalid date format")
	ErrUsage         = errors.New("invalid usage")
)

// Error tags an underlying error with a kind. Its message is the underlying
// message, unchanged, so library errors reach the user verbatim.
type Error struct {
	Kind error
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both the kind and the underlying error to errors.Is/As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// New builds a kinded error from a format string.
func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap tags err with kind. A nil err stays nil.
func Wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// ExitCode maps the outcome of a run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
