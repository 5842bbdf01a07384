package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/reddisetgo/pkg/ports"
)

func withStore(ctx context.Context, opts *RunOptions, fn func(ports.SnapshotStore) error) error {
	opts.defaults()
	cfg, err := loadConfig(*opts)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.close()
	return fn(st.store)
}

// ListSessions prints the names of stored snapshots.
func ListSessions(ctx context.Context, opts RunOptions) error {
	return withStore(ctx, &opts, func(store ports.SnapshotStore) error {
		names, err := store.List(ctx)
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		if len(names) == 0 {
			fmt.Fprintln(opts.Stdout, "No saved sessions found.")
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(opts.Stdout, "- "+n)
		}
		return nil
	})
}

// ShowSession prints a stored snapshot as indented JSON.
func ShowSession(ctx context.Context, opts RunOptions, name string) error {
	return withStore(ctx, &opts, func(store ports.SnapshotStore) error {
		snap, err := store.Load(ctx, name)
		if err != nil {
			return fmt.Errorf("loading session %q: %w", name, err)
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(opts.Stdout, string(data))
		return nil
	})
}

// RemoveSessions deletes every named snapshot, reporting each, and returns the joined failures.
func RemoveSessions(ctx context.Context, opts RunOptions, names []string) error {
	return withStore(ctx, &opts, func(store ports.SnapshotStore) error {
		var errs []error
		for _, n := range names {
			if err := store.Delete(ctx, n); err != nil {
				fmt.Fprintf(opts.Stdout, "Error removing '%s': %v\n", n, err)
				errs = append(errs, err)
				continue
			}
			fmt.Fprintf(opts.Stdout, "Removed session '%s'\n", n)
		}
		return errors.Join(errs...)
	})
}
