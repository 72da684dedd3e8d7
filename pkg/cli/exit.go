package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/jqrt/pkg/builtin"
	apperrors "github.com/dshills/jqrt/pkg/errors"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitError   = 1 // I/O, storage, failed conformance cases
	ExitUsage   = 2 // bad arguments, flags or configuration
	ExitFailure = 5 // a filter failure was reported, as jq does
)

// ErrUsage marks command-line and configuration errors.
var ErrUsage = errors.New("usage")

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case apperrors.IsFailure(err):
		return ExitFailure
	case errors.Is(err, ErrUsage),
		errors.Is(err, builtin.ErrUnknownBuiltin),
		errors.Is(err, builtin.ErrArity):
		return ExitUsage
	default:
		return ExitError
	}
}

// usageArgs wraps a cobra argument validator so its errors map to ExitUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
