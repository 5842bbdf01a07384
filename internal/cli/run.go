package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/reddisetgo"
	"github.com/aretw0/reddisetgo/internal/config"
	"github.com/aretw0/reddisetgo/internal/presentation/tui"
	httpadapter "github.com/aretw0/reddisetgo/pkg/adapters/http"
	"github.com/aretw0/reddisetgo/pkg/demo"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/observability"
	"github.com/aretw0/reddisetgo/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 2 * time.Second

// RunSession runs the interactive demo menu until the user quits, input ends or ctx is cancelled.
// It returns domain.ErrUserQuit when the user picked Quit.
func RunSession(ctx context.Context, opts RunOptions) error {
	opts.defaults()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := createLogger(cfg.Log, opts.Stderr)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.close()

	state := session.New(cfg.Network.Initial)
	sessions := newSessionManager(st, cfg.Store, logger)

	restored := false
	if opts.Resume {
		restored, err = sessions.Resume(ctx, state)
		if err != nil {
			logger.Warn("Failed to resume session", "name", sessions.Name(), "err", err)
		}
	}

	if err := alignNetwork(opts.Env, cfg.Network.Variable, state, logger); err != nil {
		return err
	}

	hooks := domain.LifecycleHooks{}
	if logger.Enabled(ctx, slog.LevelDebug) {
		hooks = hooks.Merge(observability.LoggingHooks(logger))
	}

	if cfg.Server.Addr != "" {
		stop, metricsHooks, err := startStatusServer(cfg.Server.Addr, state, logger)
		if err != nil {
			return err
		}
		defer stop()
		hooks = hooks.Merge(metricsHooks)
	}

	presenter := newPresenter(cfg.UI, opts)
	if cfg.UI.Banner && tui.IsTerminal(opts.Stdout) {
		tui.PrintBanner(opts.Stdout, presenter.Output())
	}
	if restored {
		id, _ := state.AccountID()
		presenter.Status(ctx, fmt.Sprintf("Resumed session %q as %s", sessions.Name(), id))
	}

	runner := newProcessRunner(cfg.Process, opts.Stdin, hooks, logger)
	machine := demo.NewMachine(presenter, state, nearFlows(cfg, runner, opts.Env, state, logger),
		demo.WithSessionManager(sessions),
		demo.WithHooks(hooks),
		demo.WithLogger(logger),
	)

	err = machine.Run(ctx)
	logger.Info("Session Finished", "state", machine.State(), "err", err)
	return err
}

func newPresenter(cfg config.UIConfig, opts RunOptions) *tui.Presenter {
	var popts []tui.PresenterOption
	switch cfg.Color {
	case "always":
		popts = append(popts, tui.WithColor(true))
	case "never":
		popts = append(popts, tui.WithColor(false))
	}
	if tui.IsTerminal(opts.Stdout) {
		if r, err := tui.NewRenderer(cfg.Width); err == nil {
			popts = append(popts, tui.WithRenderer(r))
		}
	}
	return tui.NewPresenter(opts.Stdin, opts.Stdout, popts...)
}

// startStatusServer serves metrics, health and the live session on addr.
func startStatusServer(addr string, state *session.State, logger *slog.Logger) (func(), domain.LifecycleHooks, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, domain.LifecycleHooks{}, err
	}

	handler := httpadapter.NewHandler(state, reg, httpadapter.Info{App: "reddisetgo", Version: reddisetgo.Version})
	srv := httpadapter.NewServer(addr, handler, logger)
	if _, err := srv.Start(); err != nil {
		return nil, domain.LifecycleHooks{}, fmt.Errorf("starting status server: %w", err)
	}

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("Status server shutdown failed", "err", err)
		}
	}
	return stop, metrics.Hooks(), nil
}
