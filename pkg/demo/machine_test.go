package demo_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/reddisetgo/internal/testutils"
	"github.com/aretw0/reddisetgo/pkg/adapters/memory"
	"github.com/aretw0/reddisetgo/pkg/demo"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/flow"
	"github.com/aretw0/reddisetgo/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	labelSetup = "Check / install near-cli"
	labelLogin = "Log in to testnet"
	labelKeys  = "List account keys"
	labelBack  = "Back"
)

type fixture struct {
	runner    *testutils.ScriptedRunner
	env       *testutils.FakeEnvironment
	state     *session.State
	presenter *scriptedPresenter
	machine   *demo.Machine
}

func newFixture(t *testing.T, network string, answers []string, opts ...demo.Option) *fixture {
	t.Helper()
	f := &fixture{
		runner:    testutils.NewScriptedRunner(),
		env:       testutils.NewFakeEnvironment(map[string]string{"NEAR_ENV": network}),
		state:     session.New(network),
		presenter: newPresenter(answers...),
	}
	cmds := flow.DefaultCommands()
	net := flow.DefaultNetwork()
	login := flow.NewLogin(f.runner, f.env, f.state, net, cmds.Login)
	near := demo.NearFlows{
		Probe:     flow.NewProbe(f.runner, cmds.Version, nil),
		Installer: flow.NewInstaller(f.runner, cmds.Install),
		Login:     login,
		Keys:      flow.NewKeys(f.runner, f.state, login, net, cmds, nil),
	}
	f.machine = demo.NewMachine(f.presenter, f.state, near, opts...)
	return f
}

func TestMachine_QuitIsDistinct(t *testing.T) {
	f := newFixture(t, "testnet", []string{"Quit"})

	err := f.machine.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrUserQuit)
	assert.Equal(t, demo.StateQuit, f.machine.State())
	assert.Contains(t, f.presenter.statuses, "Quitting...")
}

func TestMachine_InputExhaustedIsNormalCompletion(t *testing.T) {
	f := newFixture(t, "testnet", nil)

	assert.NoError(t, f.machine.Run(context.Background()))
	assert.Equal(t, demo.StateSelectChain, f.machine.State())
}

func TestMachine_DefaultChainIsNear(t *testing.T) {
	f := newFixture(t, "testnet", []string{""})

	require.NoError(t, f.machine.Step(context.Background()))
	assert.Equal(t, domain.ChainNear, f.machine.Selection().Chain)
	assert.Equal(t, demo.StateSelectDemo, f.machine.State())
	assert.Equal(t, []string{"Prepping demo...", "Nice. I'll prep the demos for Near"}, f.presenter.statuses)
}

func TestMachine_PlaceholderChains(t *testing.T) {
	tests := []struct {
		chain string
		msg   string
	}{
		{"Ethereum", "Still a todo for Ethereum demos"},
		{"Solana", "Work in progress"},
	}
	for _, tt := range tests {
		t.Run(tt.chain, func(t *testing.T) {
			f := newFixture(t, "testnet", []string{tt.chain})
			ctx := context.Background()

			require.NoError(t, f.machine.Step(ctx))
			assert.Equal(t, demo.StateSelectDemo, f.machine.State())

			require.NoError(t, f.machine.Step(ctx))
			assert.Equal(t, demo.StateSelectChain, f.machine.State())
			assert.Contains(t, f.presenter.statuses, tt.msg)
			assert.Contains(t, f.presenter.statuses, "Returning to menu")
			assert.Empty(t, f.runner.History())
		})
	}
}

func TestMachine_UnavailableDemo(t *testing.T) {
	f := newFixture(t, "testnet", []string{"Near", "Create a sub-account"})
	ctx := context.Background()

	require.NoError(t, f.machine.Step(ctx))
	require.NoError(t, f.machine.Step(ctx))

	assert.Equal(t, demo.StateSelectChain, f.machine.State())
	assert.Contains(t, f.presenter.statuses, "Work in progress")
	assert.Empty(t, f.runner.History())
}

func TestMachine_BackReturnsToChains(t *testing.T) {
	f := newFixture(t, "testnet", []string{"Near", labelBack})
	ctx := context.Background()

	require.NoError(t, f.machine.Step(ctx))
	require.NoError(t, f.machine.Step(ctx))
	assert.Equal(t, demo.StateSelectChain, f.machine.State())
}

func TestMachine_EndToEnd(t *testing.T) {
	f := newFixture(t, "testnet", []string{"Near", labelKeys, "Quit"})
	f.runner.
		On("near --version", testutils.Exit(127, "sh: 1: near: not found\n")).
		On("npm install -g near-cli", testutils.Stdout("added 1 package\n")).
		On("near login", testutils.Stdout("Logged in as bob.testnet\n")).
		On("near keys bob.testnet", testutils.Stdout("[ { access_key: { nonce: 1 } } ]\n"))
	ctx := context.Background()

	require.NoError(t, f.machine.Step(ctx)) // SelectChain -> SelectDemo
	require.NoError(t, f.machine.Step(ctx)) // SelectDemo -> RunDemo
	assert.Equal(t, demo.StateRunDemo, f.machine.State())
	require.NoError(t, f.machine.Step(ctx)) // RunDemo -> SelectChain
	assert.Equal(t, demo.StateSelectChain, f.machine.State())

	assert.Equal(t, []string{
		"near --version",
		"npm install -g near-cli",
		"near login",
		"near keys bob.testnet",
	}, f.runner.History())
	assert.Empty(t, f.presenter.errors)
	assert.Equal(t, "[ { access_key: { nonce: 1 } } ]", f.presenter.results["Keys for bob.testnet"])
	assert.Contains(t, f.presenter.statuses, "near-cli installed")
	assert.Contains(t, f.presenter.statuses, "Logged in as bob.testnet")

	assert.ErrorIs(t, f.machine.Run(ctx), domain.ErrUserQuit)
}

func TestMachine_FailuresReturnToMenu(t *testing.T) {
	t.Run("Install Failed", func(t *testing.T) {
		f := newFixture(t, "testnet", []string{"Near", labelLogin})
		f.runner.
			On("near --version", testutils.Exit(127, "near: not found")).
			On("npm install -g near-cli", testutils.Stderr("", "npm ERR! permission denied\n"))

		assert.NoError(t, f.machine.Run(context.Background()))

		require.Len(t, f.presenter.errors, 1)
		assert.ErrorIs(t, f.presenter.errors[0], domain.ErrInstallFailed)
		assert.ErrorIs(t, f.presenter.errors[0], domain.ErrToolAbsent)
		assert.Equal(t, 0, f.runner.Calls("near login"))
		assert.Equal(t, demo.StateSelectChain, f.machine.State())
	})

	t.Run("Install Warnings Continue", func(t *testing.T) {
		f := newFixture(t, "testnet", []string{"Near", labelSetup})
		f.runner.
			On("near --version", testutils.Exit(127, "near: not found")).
			On("npm install -g near-cli", testutils.Stderr("", "npm WARN deprecated pkg@1\n"))

		assert.NoError(t, f.machine.Run(context.Background()))
		assert.Empty(t, f.presenter.errors)
		assert.Contains(t, f.presenter.statuses, "near-cli installed with warnings:\nnpm WARN deprecated pkg@1")
	})

	t.Run("Login Parse Error", func(t *testing.T) {
		f := newFixture(t, "mainnet", []string{"Near", labelLogin})
		f.runner.
			On("near --version", testutils.Stdout("3.4.2")).
			On("near login", testutils.Stdout("Login cancelled\n"))

		assert.NoError(t, f.machine.Run(context.Background()))

		require.Len(t, f.presenter.errors, 1)
		assert.ErrorIs(t, f.presenter.errors[0], domain.ErrParse)
		assert.Equal(t, 1, f.env.SetCalls)
		assert.Equal(t, "testnet", f.state.Network())
		_, ok := f.state.AccountID()
		assert.False(t, ok)
	})
}

func TestMachine_HooksAndSnapshots(t *testing.T) {
	store := memory.NewStore()
	var events []*domain.FlowEvent
	hooks := domain.LifecycleHooks{
		OnFlowFinish: func(ctx context.Context, e *domain.FlowEvent) {
			events = append(events, e)
		},
	}
	f := newFixture(t, "testnet", []string{"Near", labelLogin, "Ethereum"},
		demo.WithHooks(hooks),
		demo.WithSessionManager(session.NewManager(store, "default")),
	)
	f.runner.
		On("near --version", testutils.Stdout("3.4.2")).
		On("near login", testutils.Stdout("Logged in as carol.testnet\n"))

	require.NoError(t, f.machine.Run(context.Background()))

	require.Len(t, events, 2)
	assert.Equal(t, domain.DemoSelection{Chain: domain.ChainNear, Demo: domain.DemoLogin}, events[0].Selection)
	assert.NoError(t, events[0].Err)
	assert.Equal(t, domain.ChainEthereum, events[1].Selection.Chain)

	snap, err := store.Load(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "carol.testnet", snap.AccountID)
}

func TestMachine_CancelledContext(t *testing.T) {
	f := newFixture(t, "testnet", []string{"Near"})
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	assert.ErrorIs(t, f.machine.Run(ctx), context.DeadlineExceeded)
}
