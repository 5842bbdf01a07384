package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/reddisetgo/internal/logging"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/session"
)

// Login authenticates an account with the tool and records it in the session.
type Login struct {
	runner  Runner
	env     Environment
	state   *session.State
	network Network
	command string
	timeout time.Duration
	logger  *slog.Logger
}

// LoginOption configures the Login flow.
type LoginOption func(*Login)

// WithLoginTimeout bounds the login command. Logins wait on a browser, so keep it generous.
func WithLoginTimeout(d time.Duration) LoginOption {
	return func(l *Login) {
		l.timeout = d
	}
}

// WithLoginLogger sets the structured logger.
func WithLoginLogger(logger *slog.Logger) LoginOption {
	return func(l *Login) {
		l.logger = logger
	}
}

// NewLogin creates the login flow.
func NewLogin(runner Runner, env Environment, state *session.State, network Network, command string, opts ...LoginOption) *Login {
	l := &Login{
		runner:  runner,
		env:     env,
		state:   state,
		network: network,
		command: command,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// EnsureNetwork pins the session to the required network.
// It is a no-op when already pinned; otherwise it sets the variable, reads it back
// and fails if the read-back value differs.
func (l *Login) EnsureNetwork(ctx context.Context) error {
	if l.state.Network() == l.network.Required {
		return nil
	}

	if err := l.env.Set(l.network.Variable, l.network.Required); err != nil {
		return fmt.Errorf("%w: setting %s: %w", domain.ErrEnvironment, l.network.Variable, err)
	}
	got, _ := l.env.Lookup(l.network.Variable)
	l.state.SetNetwork(got)

	if got != l.network.Required {
		return fmt.Errorf("%w: %s is %q after setting it to %q",
			domain.ErrEnvironment, l.network.Variable, got, l.network.Required)
	}
	l.logger.Info("Network Switched", "variable", l.network.Variable, "network", got)
	return nil
}

// Login runs the login command and stores the account it reports.
// On any failure the session account is left untouched.
func (l *Login) Login(ctx context.Context) (string, error) {
	if err := l.EnsureNetwork(ctx); err != nil {
		return "", err
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	res := l.runner.Run(ctx, l.command)
	if res.Err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrProcess, l.command, res.Err)
	}
	if res.HasStderr() {
		return "", fmt.Errorf("%w: %s: %s", domain.ErrProcess, l.command, strings.TrimSpace(res.Stderr))
	}

	id, ok := ParseAccountID(res.Stdout, l.network.Required)
	if !ok {
		return "", fmt.Errorf("%w: expected an account ending in %q", domain.ErrParse, l.network.AccountSuffix())
	}

	l.state.SetAccountID(id)
	l.logger.Info("Logged In", "account", id)
	return id, nil
}
