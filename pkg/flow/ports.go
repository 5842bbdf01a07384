package flow

import (
	"context"
	"os"

	"github.com/aretw0/reddisetgo/pkg/domain"
)

// Runner executes one command line and reports the outcome as a value.
// process.Runner is the production implementation.
type Runner interface {
	Run(ctx context.Context, command string) domain.CommandResult
}

// Environment reads and writes the variable that selects the tool's network.
type Environment interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

// OSEnvironment is the process environment; child processes inherit what Set writes.
type OSEnvironment struct{}

func (OSEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (OSEnvironment) Set(key, value string) error {
	return os.Setenv(key, value)
}
