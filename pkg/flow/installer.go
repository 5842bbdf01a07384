package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/reddisetgo/internal/logging"
	"github.com/aretw0/reddisetgo/pkg/domain"
)

// DefaultFatalMarkers are the stderr substrings npm uses for fatal errors.
// Anything else on stderr during an install is a warning.
var DefaultFatalMarkers = []string{"ERR!"}

// ClassifyInstall applies, in order: process failure, fatal marker in stderr,
// other stderr output, clean run.
func ClassifyInstall(res domain.CommandResult, fatalMarkers []string) domain.InstallOutcome {
	if res.Failed() {
		return domain.InstallFailed
	}
	if !res.HasStderr() {
		return domain.Installed
	}
	for _, marker := range fatalMarkers {
		if marker != "" && strings.Contains(res.Stderr, marker) {
			return domain.InstallFailed
		}
	}
	return domain.InstalledWithWarnings
}

// InstallReport carries the outcome and what the user should see about it.
type InstallReport struct {
	Outcome  domain.InstallOutcome
	Warnings string
	Result   domain.CommandResult
}

// Installer installs the tool on demand.
type Installer struct {
	runner  Runner
	command string
	markers []string
	timeout time.Duration
	logger  *slog.Logger
}

// InstallerOption configures the Installer.
type InstallerOption func(*Installer)

// WithFatalMarkers replaces DefaultFatalMarkers.
func WithFatalMarkers(markers ...string) InstallerOption {
	return func(i *Installer) {
		i.markers = markers
	}
}

// WithInstallTimeout bounds the install command.
func WithInstallTimeout(d time.Duration) InstallerOption {
	return func(i *Installer) {
		i.timeout = d
	}
}

// WithInstallLogger sets the structured logger.
func WithInstallLogger(logger *slog.Logger) InstallerOption {
	return func(i *Installer) {
		i.logger = logger
	}
}

// NewInstaller creates an Installer running the given install command.
func NewInstaller(runner Runner, command string, opts ...InstallerOption) *Installer {
	i := &Installer{
		runner:  runner,
		command: command,
		markers: DefaultFatalMarkers,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install runs the install command. The error is non-nil exactly when the outcome is InstallFailed.
func (i *Installer) Install(ctx context.Context) (InstallReport, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	res := i.runner.Run(ctx, i.command)
	report := InstallReport{Outcome: ClassifyInstall(res, i.markers), Result: res}
	i.logger.Info("Install", "command", i.command, "outcome", report.Outcome, "err", res.Err)

	switch report.Outcome {
	case domain.InstallFailed:
		if res.Err != nil {
			return report, fmt.Errorf("%w: %w", domain.ErrInstallFailed, res.Err)
		}
		return report, fmt.Errorf("%w: %s", domain.ErrInstallFailed, firstLine(res.Stderr))
	case domain.InstalledWithWarnings:
		report.Warnings = strings.TrimSpace(res.Stderr)
	}
	return report, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
