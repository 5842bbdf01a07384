package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/reddisetgo/internal/logging"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/flow"
	"github.com/aretw0/reddisetgo/pkg/session"
)

// State is a state of the demo loop.
type State int

const (
	StateSelectChain State = iota
	StateSelectDemo
	StateRunDemo
	StateQuit
)

func (s State) String() string {
	switch s {
	case StateSelectChain:
		return "select_chain"
	case StateSelectDemo:
		return "select_demo"
	case StateRunDemo:
		return "run_demo"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ToolProbe reports whether the tool is usable.
type ToolProbe interface {
	Check(ctx context.Context) domain.ToolStatus
}

// ToolInstaller installs the tool.
type ToolInstaller interface {
	Install(ctx context.Context) (flow.InstallReport, error)
}

// Authenticator logs an account in.
type Authenticator interface {
	Login(ctx context.Context) (string, error)
}

// KeyLister lists the keys of the session account.
type KeyLister interface {
	ListKeys(ctx context.Context) (flow.KeysResult, error)
}

// NearFlows are the flows behind the Near demos.
type NearFlows struct {
	Probe     ToolProbe
	Installer ToolInstaller
	Login     Authenticator
	Keys      KeyLister
}

// Machine is the top level dispatcher.
type Machine struct {
	presenter Presenter
	near      NearFlows
	state     *session.State
	sessions  *session.Manager
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	toolName  string

	current   State
	selection domain.DemoSelection
}

// Option configures the Machine.
type Option func(*Machine)

// WithSessionManager saves a snapshot of the session after every demo.
func WithSessionManager(m *session.Manager) Option {
	return func(mc *Machine) {
		mc.sessions = m
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithToolName sets the tool name used in status lines (default "near-cli").
func WithToolName(name string) Option {
	return func(m *Machine) {
		m.toolName = name
	}
}

// NewMachine creates a Machine in StateSelectChain.
func NewMachine(presenter Presenter, state *session.State, near NearFlows, opts ...Option) *Machine {
	m := &Machine{
		presenter: presenter,
		near:      near,
		state:     state,
		logger:    logging.NewNop(),
		toolName:  "near-cli",
		current:   StateSelectChain,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	return m.current
}

// Selection returns the chain and demo of the current iteration.
func (m *Machine) Selection() domain.DemoSelection {
	return m.selection
}

// Run steps the machine until the user quits, input ends, or ctx is cancelled.
// It returns domain.ErrUserQuit on Quit and nil when input is exhausted.
func (m *Machine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := m.Step(ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF):
			m.logger.Info("Input Closed", "state", m.current)
			return nil
		default:
			return err
		}
	}
}

// Step performs one transition. Flow failures are reported, not returned.
func (m *Machine) Step(ctx context.Context) error {
	switch m.current {
	case StateSelectChain:
		return m.selectChain(ctx)
	case StateSelectDemo:
		return m.selectDemo(ctx)
	case StateRunDemo:
		m.runDemo(ctx)
		return nil
	case StateQuit:
		return domain.ErrUserQuit
	default:
		return fmt.Errorf("invalid demo state %d", m.current)
	}
}

func (m *Machine) selectChain(ctx context.Context) error {
	labels, def := chainLabels()
	idx, err := m.presenter.Choose(ctx, ChainPrompt, labels, def)
	if err != nil {
		return err
	}
	chain := Chains[idx]
	m.selection = domain.DemoSelection{Chain: chain}

	if chain == domain.ChainQuit {
		m.presenter.Status(ctx, "Quitting...")
		m.current = StateQuit
		return domain.ErrUserQuit
	}

	m.presenter.Status(ctx, "Prepping demo...")
	m.presenter.Status(ctx, fmt.Sprintf("Nice. I'll prep the demos for %s", chain))
	m.current = StateSelectDemo
	return nil
}

func (m *Machine) selectDemo(ctx context.Context) error {
	entries := Catalog[m.selection.Chain]
	if len(entries) == 0 {
		m.finish(ctx, Placeholder(m.selection.Chain), time.Now(), nil)
		return nil
	}

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	idx, err := m.presenter.Choose(ctx, DemoPrompt, labels, 0)
	if err != nil {
		return err
	}
	entry := entries[idx]
	m.selection.Demo = entry.Demo

	switch {
	case entry.Demo == domain.DemoBack:
		m.current = StateSelectChain
	case !entry.Available:
		m.finish(ctx, defaultPlaceholder, time.Now(), nil)
	default:
		m.current = StateRunDemo
	}
	return nil
}

func (m *Machine) runDemo(ctx context.Context) {
	start := time.Now()
	err := m.runNear(ctx, m.selection.Demo)
	m.finish(ctx, "", start, err)
}

// finish reports the leaf outcome and returns to the top menu.
func (m *Machine) finish(ctx context.Context, msg string, start time.Time, err error) {
	if msg != "" {
		m.presenter.Status(ctx, msg)
	}
	if err != nil {
		m.logger.Warn("Demo Failed", "chain", m.selection.Chain, "demo", m.selection.Demo, "err", err)
		m.presenter.Error(ctx, err)
	}

	if m.hooks.OnFlowFinish != nil {
		m.hooks.OnFlowFinish(ctx, &domain.FlowEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFlowFinish},
			Selection: m.selection,
			Duration:  time.Since(start),
			Err:       err,
		})
	}

	if m.sessions != nil {
		if saveErr := m.sessions.Save(ctx, m.state); saveErr != nil {
			m.logger.Warn("Failed to save session", "err", saveErr)
		}
	}

	m.presenter.Status(ctx, "Returning to menu")
	m.current = StateSelectChain
}

func (m *Machine) runNear(ctx context.Context, demo domain.Demo) error {
	if err := m.ensureTool(ctx); err != nil {
		return err
	}

	switch demo {
	case domain.DemoSetup:
		return nil
	case domain.DemoLogin:
		id, err := m.near.Login.Login(ctx)
		if err != nil {
			return err
		}
		m.presenter.Status(ctx, fmt.Sprintf("Logged in as %s", id))
		return nil
	case domain.DemoKeys:
		res, err := m.near.Keys.ListKeys(ctx)
		if err != nil {
			return err
		}
		if res.LoggedIn {
			m.presenter.Status(ctx, fmt.Sprintf("Logged in as %s", res.AccountID))
		}
		m.presenter.Result(ctx, fmt.Sprintf("Keys for %s", res.AccountID), res.Listing)
		return nil
	default:
		return fmt.Errorf("unknown demo %q", demo)
	}
}

// ensureTool probes the tool and installs it when absent.
func (m *Machine) ensureTool(ctx context.Context) error {
	if m.near.Probe.Check(ctx) == domain.ToolPresent {
		m.presenter.Status(ctx, fmt.Sprintf("%s is installed", m.toolName))
		return nil
	}

	m.presenter.Status(ctx, fmt.Sprintf("%s not found, installing it...", m.toolName))
	report, err := m.near.Installer.Install(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrToolAbsent, err)
	}
	if report.Outcome == domain.InstalledWithWarnings {
		m.presenter.Status(ctx, fmt.Sprintf("%s installed with warnings:\n%s", m.toolName, report.Warnings))
		return nil
	}
	m.presenter.Status(ctx, fmt.Sprintf("%s installed", m.toolName))
	return nil
}
