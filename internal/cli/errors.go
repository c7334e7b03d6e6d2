package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitRuntime   = 1
	ExitUsage     = 2
	ExitLintError = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// toExitError maps any error returned by command execution to an ExitError.
func toExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return &ExitError{Code: ExitRuntime, Message: err.Error()}
}
