package domain

import "errors"

// Process level failures, carried in CommandResult.Err.
var (
	// ErrSpawn is returned when the external process could not be started at all.
	ErrSpawn = errors.New("process could not be started")

	// ErrTimeout is returned when the process did not finish before its deadline.
	ErrTimeout = errors.New("process timed out")

	// ErrNonZeroExit is returned when the process ran but exited with a non-zero status.
	ErrNonZeroExit = errors.New("process exited with non-zero status")
)

// Flow level failures.
var (
	// ErrToolAbsent is returned when the version probe classified the tool as unusable.
	ErrToolAbsent = errors.New("tool is not available")

	// ErrInstallFailed is returned when the install command failed or reported a fatal marker.
	ErrInstallFailed = errors.New("tool installation failed")

	// ErrProcess is returned when an account command exited badly or wrote to stderr.
	ErrProcess = errors.New("command failed")

	// ErrParse is returned when the login output contains no account identifier.
	ErrParse = errors.New("account identifier not found in output")

	// ErrEnvironment is returned when the network switch did not take effect.
	ErrEnvironment = errors.New("network environment mismatch")

	// ErrUnauthenticated is returned when an account-scoped action has no account after the login retry.
	ErrUnauthenticated = errors.New("no authenticated account")
)

// ErrUserQuit is returned by the demo loop when the user selects Quit.
var ErrUserQuit = errors.New("user requested quit")

// ErrSnapshotNotFound is returned when a session snapshot cannot be found in the store.
var ErrSnapshotNotFound = errors.New("session snapshot not found")
