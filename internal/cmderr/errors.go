// Package cmderr defines the error kinds shared by the parsing, conversion and
// dispatch layers, and maps them to process exit codes.
package cmderr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a missing or empty required input such as a nil
	// argument list, an empty lookup key or an empty registration name.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotSupported reports a conversion that has no registered converter or
	// that the converter cannot perform.
	ErrNotSupported = errors.New("not supported")
	// ErrExecutionFailed reports a command handler that failed while running.
	ErrExecutionFailed = errors.New("execution failed")
	// ErrNotFound reports a lookup of a command that is not registered.
	ErrNotFound = errors.New("not found")
)

// InvalidArgument returns an error wrapping ErrInvalidArgument for the named parameter.
func InvalidArgument(name string) error {
	return fmt.Errorf("%w: %s must not be empty", ErrInvalidArgument, name)
}

// ExecutionError wraps a failure raised by a command handler.
type ExecutionError struct {
	Command string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("command %q: %s: %v", e.Command, ErrExecutionFailed, e.Err)
}

// Unwrap returns the handler's original error.
func (e *ExecutionError) Unwrap() error { return e.Err }

// Is makes every ExecutionError match ErrExecutionFailed.
func (e *ExecutionError) Is(target error) bool { return target == ErrExecutionFailed }
