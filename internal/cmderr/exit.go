package cmderr

import "errors"

// Process exit codes.
const (
	ExitSuccess         = 0
	ExitFailure         = 1
	ExitInvalidArgument = 2
	ExitNotSupported    = 3
	ExitExecutionFailed = 4
)

// ExitCode maps an error to the exit code of its kind. Execution failures take
// precedence because a handler may itself fail with another kind.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrInvalidArgument):
		return ExitInvalidArgument
	case errors.Is(err, ErrNotSupported):
		return ExitNotSupported
	default:
		return ExitFailure
	}
}
