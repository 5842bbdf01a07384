package cli

import (
	"io"
	"os"

	"github.com/aretw0/reddisetgo/pkg/flow"
)

// RunOptions carries the command line flags shared by the run and doctor commands.
type RunOptions struct {
	ConfigPath  string
	Debug       bool
	Resume      bool
	MetricsAddr string
	Store       string // overrides store.kind
	Session     string // overrides store.session
	NoBanner    bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Lookup reads environment variables. Nil uses the process environment.
	Lookup func(string) (string, bool)
	// Env is where the network variable is pinned. Nil uses the process environment.
	Env flow.Environment
}

func (o *RunOptions) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Lookup == nil {
		o.Lookup = os.LookupEnv
	}
	if o.Env == nil {
		o.Env = flow.OSEnvironment{}
	}
}
