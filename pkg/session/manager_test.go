package session_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/reddisetgo/pkg/adapters/memory"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/ports"
	"github.com/aretw0/reddisetgo/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLocker struct {
	locks, unlocks atomic.Int32
	fail           bool
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.fail {
		return nil, errors.New("lock unavailable")
	}
	l.locks.Add(1)
	return func(ctx context.Context) error {
		l.unlocks.Add(1)
		return nil
	}, nil
}

func TestManager_SaveAndResume(t *testing.T) {
	store := memory.NewStore()
	manager := session.NewManager(store, "default")
	ctx := context.Background()

	state := session.New("testnet")
	state.SetAccountID("alice_01.testnet")
	require.NoError(t, manager.Save(ctx, state))

	fresh := session.New("testnet")
	restored, err := manager.Resume(ctx, fresh)
	require.NoError(t, err)
	assert.True(t, restored)

	id, ok := fresh.AccountID()
	assert.True(t, ok)
	assert.Equal(t, "alice_01.testnet", id)
}

func TestManager_ResumeMissing(t *testing.T) {
	manager := session.NewManager(memory.NewStore(), "default")

	restored, err := manager.Resume(context.Background(), session.New("testnet"))
	assert.NoError(t, err)
	assert.False(t, restored)
}

func TestManager_Locking(t *testing.T) {
	locker := &countingLocker{}
	manager := session.NewManager(memory.NewStore(), "default", session.WithLocker(locker))

	require.NoError(t, manager.Save(context.Background(), session.New("testnet")))

	assert.Equal(t, int32(1), locker.locks.Load())
	assert.Equal(t, int32(1), locker.unlocks.Load())
}

func TestManager_LockFailure(t *testing.T) {
	store := memory.NewStore()
	manager := session.NewManager(store, "default", session.WithLocker(&countingLocker{fail: true}))

	err := manager.Save(context.Background(), session.New("testnet"))
	assert.Error(t, err)

	_, err = store.Load(context.Background(), "default")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}
