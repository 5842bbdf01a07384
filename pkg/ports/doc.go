/*
Package ports defines the driven ports (interfaces) for the reddisetgo orchestrator.

These interfaces decouple the demo loop and the session manager from concrete
storage backends.

# Key Interfaces

  - SnapshotStore: Persists and loads session snapshots (memory, file, Redis).
  - DistributedLocker: Serializes snapshot writes across several CLI instances sharing a store.
*/
package ports
