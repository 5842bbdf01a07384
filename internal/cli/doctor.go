package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/session"
)

// RunDoctor checks the demonstrated tool without the menu and installs it when absent.
// It fails with domain.ErrInstallFailed when the install does not succeed.
func RunDoctor(ctx context.Context, opts RunOptions) error {
	opts.defaults()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := createLogger(cfg.Log, opts.Stderr)
	if err != nil {
		return err
	}

	state := session.New(cfg.Network.Initial)
	runner := newProcessRunner(cfg.Process, opts.Stdin, domain.LifecycleHooks{}, logger)
	flows := nearFlows(cfg, runner, opts.Env, state, logger)
	w := opts.Stdout

	network := state.Network()
	if network == "" {
		network = "(unset)"
	}
	fmt.Fprintf(w, "%s: %s (required %s)\n", cfg.Network.Variable, network, cfg.Network.Required)

	if flows.Probe.Check(ctx) == domain.ToolPresent {
		fmt.Fprintf(w, "ok: %q succeeded\n", cfg.Commands.Version)
		return nil
	}

	fmt.Fprintf(w, "missing: %q failed, running %q\n", cfg.Commands.Version, cfg.Commands.Install)
	report, err := flows.Installer.Install(ctx)
	if err != nil {
		fmt.Fprintf(w, "failed: %v\n", err)
		return err
	}
	fmt.Fprintf(w, "%s\n", report.Outcome)
	if report.Warnings != "" {
		fmt.Fprintln(w, report.Warnings)
	}
	return nil
}
