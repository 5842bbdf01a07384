/*
Package session holds the interactive session state and its persistence.

State is the single record of the selected network and the authenticated
account, owned by the demo loop and handed to every flow. Manager saves and
restores snapshots of it through a ports.SnapshotStore, optionally guarded by
a distributed lock when several processes share one store.
*/
package session
