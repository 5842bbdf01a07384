package domain

import (
	"strings"
	"time"
)

// CommandResult is the captured outcome of one external process invocation.
// It is produced once per invocation and consumed by exactly one classifier.
type CommandResult struct {
	Command  string        `json:"command"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	ExitCode int           `json:"exit_code"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Failed reports whether the process could not be run to a zero exit status.
func (r CommandResult) Failed() bool {
	return r.Err != nil
}

// HasStderr reports whether the process wrote anything other than whitespace to stderr.
func (r CommandResult) HasStderr() bool {
	return strings.TrimSpace(r.Stderr) != ""
}

// Clean reports whether the process succeeded without writing to stderr.
func (r CommandResult) Clean() bool {
	return !r.Failed() && !r.HasStderr()
}
