package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/reddisetgo/pkg/domain"
)

// ScriptedRunner is a fake process runner that answers commands from a script.
// Each command maps to a queue of results; the last result repeats once the queue is drained.
// Unknown commands fail with domain.ErrSpawn.
type ScriptedRunner struct {
	mu      sync.Mutex
	script  map[string][]domain.CommandResult
	history []string
}

// NewScriptedRunner creates an empty ScriptedRunner.
func NewScriptedRunner() *ScriptedRunner {
	return &ScriptedRunner{script: make(map[string][]domain.CommandResult)}
}

// On queues results for command and returns the runner for chaining.
func (r *ScriptedRunner) On(command string, results ...domain.CommandResult) *ScriptedRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.script[command] = append(r.script[command], results...)
	return r
}

// Run satisfies the flow runner port.
func (r *ScriptedRunner) Run(ctx context.Context, command string) domain.CommandResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, command)
	queue, ok := r.script[command]
	if !ok || len(queue) == 0 {
		return domain.CommandResult{
			Command:  command,
			ExitCode: -1,
			Err:      fmt.Errorf("%w: no scripted result for %q", domain.ErrSpawn, command),
		}
	}
	res := queue[0]
	if len(queue) > 1 {
		r.script[command] = queue[1:]
	}
	res.Command = command
	return res
}

// Calls returns how many times command was run.
func (r *ScriptedRunner) Calls(command string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.history {
		if c == command {
			n++
		}
	}
	return n
}

// CallsWithPrefix returns how many commands started with prefix.
func (r *ScriptedRunner) CallsWithPrefix(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.history {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// History returns every command in invocation order.
func (r *ScriptedRunner) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

// Stdout builds a clean result.
func Stdout(out string) domain.CommandResult {
	return domain.CommandResult{Stdout: out}
}

// Stderr builds a zero-exit result that wrote to stderr.
func Stderr(out, errOut string) domain.CommandResult {
	return domain.CommandResult{Stdout: out, Stderr: errOut}
}

// Exit builds a non-zero exit result.
func Exit(code int, errOut string) domain.CommandResult {
	return domain.CommandResult{
		Stderr:   errOut,
		ExitCode: code,
		Err:      fmt.Errorf("%w: exit status %d", domain.ErrNonZeroExit, code),
	}
}

// FakeEnvironment is an in-memory environment that counts Set calls.
// When Pinned is set, Set is accepted but Lookup keeps returning the pinned value,
// mimicking an external override of the variable.
type FakeEnvironment struct {
	mu       sync.Mutex
	vars     map[string]string
	Pinned   map[string]string
	SetCalls int
}

// NewFakeEnvironment seeds a FakeEnvironment with vars.
func NewFakeEnvironment(vars map[string]string) *FakeEnvironment {
	env := &FakeEnvironment{vars: make(map[string]string), Pinned: make(map[string]string)}
	for k, v := range vars {
		env.vars[k] = v
	}
	return env
}

func (e *FakeEnvironment) Lookup(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v, ok := e.Pinned[key]; ok {
		return v, true
	}
	v, ok := e.vars[key]
	return v, ok
}

func (e *FakeEnvironment) Set(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.SetCalls++
	e.vars[key] = value
	return nil
}
