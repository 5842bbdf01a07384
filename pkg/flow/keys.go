package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/reddisetgo/internal/logging"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/session"
)

// Authenticator is the part of the login flow the keys flow depends on.
type Authenticator interface {
	EnsureNetwork(ctx context.Context) error
	Login(ctx context.Context) (string, error)
}

// KeysResult is the raw key listing of an account.
type KeysResult struct {
	AccountID string
	Listing   string
	// LoggedIn is set when the flow had to log in before querying.
	LoggedIn bool
}

// Keys lists the access keys of the session's account.
type Keys struct {
	runner   Runner
	state    *session.State
	auth     Authenticator
	network  Network
	commands Commands
	logger   *slog.Logger
}

// NewKeys creates the keys flow.
func NewKeys(runner Runner, state *session.State, auth Authenticator, network Network, commands Commands, logger *slog.Logger) *Keys {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Keys{
		runner:   runner,
		state:    state,
		auth:     auth,
		network:  network,
		commands: commands,
		logger:   logger,
	}
}

// ListKeys queries the keys of the session account.
// Without an account it logs in once and retries once; a failed login ends the flow.
func (k *Keys) ListKeys(ctx context.Context) (KeysResult, error) {
	loggedIn := false
	for {
		if id, ok := k.account(); ok {
			if err := k.auth.EnsureNetwork(ctx); err != nil {
				return KeysResult{}, err
			}
			res, err := k.query(ctx, id)
			res.LoggedIn = loggedIn
			return res, err
		}
		if loggedIn {
			return KeysResult{}, fmt.Errorf("%w: login reported no usable account", domain.ErrUnauthenticated)
		}

		loggedIn = true
		k.logger.Info("No Account, Logging In")
		if _, err := k.auth.Login(ctx); err != nil {
			return KeysResult{}, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
		}
	}
}

func (k *Keys) account() (string, bool) {
	id, ok := k.state.AccountID()
	if !ok || !ValidAccountID(id, k.network.Required) {
		return "", false
	}
	return id, true
}

func (k *Keys) query(ctx context.Context, id string) (KeysResult, error) {
	command := k.commands.KeysFor(id)
	res := k.runner.Run(ctx, command)
	if res.Err != nil {
		return KeysResult{}, fmt.Errorf("%w: %s: %w", domain.ErrProcess, command, res.Err)
	}
	if res.HasStderr() {
		return KeysResult{}, fmt.Errorf("%w: %s: %s", domain.ErrProcess, command, strings.TrimSpace(res.Stderr))
	}
	return KeysResult{AccountID: id, Listing: strings.TrimSpace(res.Stdout)}, nil
}
