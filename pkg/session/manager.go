package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/reddisetgo/internal/logging"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed writer can hold the distributed lock.
const DefaultLockTTL = 30 * time.Second

// Manager persists snapshots of a session State under a fixed name.
type Manager struct {
	store ports.SnapshotStore
	name  string

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking around writes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.SnapshotStore, name string, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		name:    name,
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the snapshot name this manager writes to.
func (m *Manager) Name() string {
	return m.name
}

// Save persists the current snapshot of state.
func (m *Manager) Save(ctx context.Context, state *State) error {
	snap := state.Snapshot()
	return m.withLock(ctx, func(ctx context.Context) error {
		if err := m.store.Save(ctx, m.name, snap); err != nil {
			return fmt.Errorf("failed to save session %q: %w", m.name, err)
		}
		return nil
	})
}

// Resume loads the stored snapshot into state.
// A missing snapshot is not an error; it reports whether an account was restored.
func (m *Manager) Resume(ctx context.Context, state *State) (bool, error) {
	snap, err := m.store.Load(ctx, m.name)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load session %q: %w", m.name, err)
	}
	restored := state.Restore(snap)
	m.logger.Info("Session Resumed", "name", m.name, "account", snap.AccountID, "restored", restored)
	return restored, nil
}

// Load returns the snapshot stored under name.
func (m *Manager) Load(ctx context.Context, name string) (domain.SessionSnapshot, error) {
	return m.store.Load(ctx, name)
}

// Delete removes the snapshot stored under name.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.store.Delete(ctx, name)
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

func (m *Manager) withLock(ctx context.Context, fn func(context.Context) error) error {
	if m.locker == nil {
		return fn(ctx)
	}

	unlock, err := m.locker.Lock(ctx, m.name, m.lockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire distributed lock: %w", err)
	}
	defer func() {
		if err := unlock(ctx); err != nil {
			m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
				"name", m.name,
				"err", err,
			)
		}
	}()

	return fn(ctx)
}
