package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/aretw0/reddisetgo/internal/logging"
	"github.com/aretw0/reddisetgo/pkg/domain"
)

// DefaultWaitDelay bounds how long Run waits for output pipes after the process was killed.
const DefaultWaitDelay = 2 * time.Second

// Runner executes shell command lines and captures their output.
// Invocations are serialized: a second Run blocks until the first one returns.
type Runner struct {
	shell   Shell
	baseDir string
	env     []string
	stdin   io.Reader
	timeout time.Duration
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	mu sync.Mutex
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithShell overrides the shell used to interpret command lines.
func WithShell(shell Shell) RunnerOption {
	return func(r *Runner) {
		r.shell = shell
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) RunnerOption {
	return func(r *Runner) {
		r.env = append(r.env, env...)
	}
}

// WithStdin connects the child's stdin, e.g. to the user's terminal for interactive logins.
func WithStdin(stdin io.Reader) RunnerOption {
	return func(r *Runner) {
		r.stdin = stdin
	}
}

// WithTimeout bounds invocations whose context carries no deadline of its own.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) RunnerOption {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		shell:  DefaultShell(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes command and blocks until it completes or fails to spawn.
// It never returns a Go error: every failure is reported in CommandResult.Err.
func (r *Runner) Run(ctx context.Context, command string) domain.CommandResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok && r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.emit(ctx, r.hooks.OnProcessStart, &domain.ProcessEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventProcessStart},
		Command:   command,
	})
	r.logger.Debug("Process Start", "command", command)

	result := r.execute(ctx, command)

	r.logger.Debug("Process Finish",
		"command", command,
		"exit_code", result.ExitCode,
		"duration", result.Duration,
		"error", result.Err,
	)
	r.emit(ctx, r.hooks.OnProcessFinish, &domain.ProcessEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventProcessFinish},
		Command:   command,
		Duration:  result.Duration,
		ExitCode:  result.ExitCode,
		Err:       result.Err,
	})
	return result
}

func (r *Runner) execute(ctx context.Context, command string) domain.CommandResult {
	result := domain.CommandResult{Command: command}

	cmd := exec.CommandContext(ctx, r.shell.Program, append(r.shell.Args, command)...)
	cmd.Dir = r.baseDir
	cmd.Env = append(cmd.Environ(), r.env...)
	cmd.Stdin = r.stdin
	cmd.WaitDelay = DefaultWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		result.ExitCode = -1
		result.Err = fmt.Errorf("%w: %v", domain.ErrSpawn, err)
		return result
	}
	err := cmd.Wait()
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.ExitCode = cmd.ProcessState.ExitCode()

	if err == nil {
		return result
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.Err = fmt.Errorf("%w after %s", domain.ErrTimeout, result.Duration.Round(time.Millisecond))
	case ctx.Err() != nil:
		result.Err = ctx.Err()
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.Err = fmt.Errorf("%w: exit status %d", domain.ErrNonZeroExit, exitErr.ExitCode())
		} else {
			result.Err = fmt.Errorf("execution failed: %w", err)
		}
	}
	return result
}

func (r *Runner) emit(ctx context.Context, hook func(context.Context, *domain.ProcessEvent), e *domain.ProcessEvent) {
	if hook != nil {
		hook(ctx, e)
	}
}
