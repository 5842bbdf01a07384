package session

import (
	"sync"
	"time"

	"github.com/aretw0/reddisetgo/pkg/domain"
)

// State is the mutable session record: network environment and account identifier.
// Safe for concurrent use, although flows only touch it one at a time.
type State struct {
	mu        sync.RWMutex
	network   string
	accountID string
	updatedAt time.Time
	now       func() time.Time
}

// New creates a session for the given network, which may be empty.
func New(network string) *State {
	s := &State{network: network, now: time.Now}
	s.updatedAt = s.now()
	return s
}

// Network returns the active network environment.
func (s *State) Network() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.network
}

// SetNetwork records the active network environment.
func (s *State) SetNetwork(network string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.network = network
	s.updatedAt = s.now()
}

// AccountID returns the authenticated account, if any.
func (s *State) AccountID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountID, s.accountID != ""
}

// SetAccountID records the authenticated account.
func (s *State) SetAccountID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountID = id
	s.updatedAt = s.now()
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() domain.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SessionSnapshot{
		Network:   s.network,
		AccountID: s.accountID,
		UpdatedAt: s.updatedAt,
	}
}

// Restore adopts the account of a saved snapshot when it belongs to the current network.
// An empty current network is taken from the snapshot. It reports whether an account was restored.
func (s *State) Restore(snap domain.SessionSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.network == "" {
		s.network = snap.Network
	}
	if snap.AccountID == "" || snap.Network != s.network {
		return false
	}
	s.accountID = snap.AccountID
	s.updatedAt = s.now()
	return true
}
