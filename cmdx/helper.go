package cmdx

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// ExitValid is returned when the instance conforms.
	ExitValid = 0
	// ExitInvalid is returned when the instance does not conform.
	ExitInvalid = 1
	// ExitRuntimeError is returned for every other failure.
	ExitRuntimeError = 2
)

// ExitError carries the exit code a command wants the process to end with.
// Err is nil when everything worth saying has already been printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// FailSilently makes the process exit with code without printing anything else.
func FailSilently(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitValid
	}

	var e *ExitError
	if errors.As(err, &e) {
		return e.Code
	}
	return ExitRuntimeError
}
