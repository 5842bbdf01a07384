package ports

import (
	"context"

	"github.com/aretw0/reddisetgo/pkg/domain"
)

// SnapshotStore defines the interface for persisting session snapshots.
// It lets a later run resume with the account a previous run authenticated.
type SnapshotStore interface {
	// Save persists the snapshot under name, replacing any previous one.
	Save(ctx context.Context, name string, snap domain.SessionSnapshot) error

	// Load retrieves the snapshot stored under name.
	// Returns domain.ErrSnapshotNotFound if it does not exist.
	Load(ctx context.Context, name string) (domain.SessionSnapshot, error)

	// Delete removes the snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of every stored snapshot.
	List(ctx context.Context) ([]string, error)
}
