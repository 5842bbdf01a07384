package cli

import (
	"context"
	"errors"
	"os"

	"github.com/aretw0/reddisetgo/pkg/domain"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitQuit        = 1
	ExitFailure     = 2
	ExitInterrupted = 130
)

// ExitCode maps the outcome of a command to the process exit status.
// sig is the signal that cancelled the run, if any.
func ExitCode(err error, sig os.Signal) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrUserQuit):
		return ExitQuit
	case sig != nil, errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}
