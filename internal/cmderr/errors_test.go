package cmderr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutionErrorMatchesKindAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("dispatch: %w", &ExecutionError{Command: "register", Err: cause})

	assert.ErrorIs(t, err, ErrExecutionFailed)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `command "register"`)

	var execErr *ExecutionError
	assert.True(t, errors.As(err, &execErr))
	assert.Equal(t, "register", execErr.Command)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: ExitSuccess},
		{name: "invalid argument", err: InvalidArgument("key"), expected: ExitInvalidArgument},
		{name: "not supported", err: fmt.Errorf("convert: %w", ErrNotSupported), expected: ExitNotSupported},
		{
			name:     "execution failure wrapping invalid argument",
			err:      &ExecutionError{Command: "launch", Err: InvalidArgument("path")},
			expected: ExitExecutionFailed,
		},
		{name: "not found", err: ErrNotFound, expected: ExitFailure},
		{name: "joined", err: errors.Join(errors.New("boom"), ErrNotSupported), expected: ExitNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}
