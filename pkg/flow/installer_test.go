package flow_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/reddisetgo/internal/testutils"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyInstall(t *testing.T) {
	tests := []struct {
		name string
		res  domain.CommandResult
		want domain.InstallOutcome
	}{
		{"Clean", domain.CommandResult{Stdout: "added 1 package"}, domain.Installed},
		{"Fatal Marker", domain.CommandResult{Stderr: "npm ERR! permission denied"}, domain.InstallFailed},
		{"Warning Only", domain.CommandResult{Stderr: "npm WARN deprecated pkg@1"}, domain.InstalledWithWarnings},
		{"Marker After Warnings", domain.CommandResult{Stderr: "npm WARN old\nnpm ERR! code EACCES\n"}, domain.InstallFailed},
		{"Exit Error Wins", testutils.Exit(1, "npm WARN deprecated pkg@1"), domain.InstallFailed},
		{"Spawn Error", domain.CommandResult{Err: domain.ErrSpawn}, domain.InstallFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flow.ClassifyInstall(tt.res, flow.DefaultFatalMarkers))
		})
	}
}

func TestClassifyInstall_CustomMarkers(t *testing.T) {
	res := domain.CommandResult{Stderr: "npm error code EACCES"}

	assert.Equal(t, domain.InstalledWithWarnings, flow.ClassifyInstall(res, flow.DefaultFatalMarkers))
	assert.Equal(t, domain.InstallFailed, flow.ClassifyInstall(res, []string{"ERR!", "npm error"}))
}

func TestInstaller_Install(t *testing.T) {
	const cmd = "npm install -g near-cli"
	ctx := context.Background()

	t.Run("Installed", func(t *testing.T) {
		runner := testutils.NewScriptedRunner().On(cmd, testutils.Stdout("added 1 package\n"))
		report, err := flow.NewInstaller(runner, cmd).Install(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.Installed, report.Outcome)
		assert.Empty(t, report.Warnings)
	})

	t.Run("Warnings Are Not Failures", func(t *testing.T) {
		runner := testutils.NewScriptedRunner().On(cmd, testutils.Stderr("added 1 package\n", "npm WARN deprecated pkg@1\n"))
		report, err := flow.NewInstaller(runner, cmd).Install(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.InstalledWithWarnings, report.Outcome)
		assert.Equal(t, "npm WARN deprecated pkg@1", report.Warnings)
		assert.True(t, report.Outcome.Succeeded())
	})

	t.Run("Fatal Marker", func(t *testing.T) {
		runner := testutils.NewScriptedRunner().On(cmd, testutils.Stderr("", "npm ERR! permission denied\nnpm ERR! more\n"))
		report, err := flow.NewInstaller(runner, cmd).Install(ctx)
		assert.ErrorIs(t, err, domain.ErrInstallFailed)
		assert.Contains(t, err.Error(), "npm ERR! permission denied")
		assert.NotContains(t, err.Error(), "more")
		assert.Equal(t, domain.InstallFailed, report.Outcome)
	})

	t.Run("Exit Error", func(t *testing.T) {
		runner := testutils.NewScriptedRunner().On(cmd, testutils.Exit(243, ""))
		_, err := flow.NewInstaller(runner, cmd).Install(ctx)
		assert.ErrorIs(t, err, domain.ErrInstallFailed)
		assert.ErrorIs(t, err, domain.ErrNonZeroExit)
	})

	t.Run("Timeout Applies To Context", func(t *testing.T) {
		var deadline time.Time
		runner := runnerFunc(func(ctx context.Context, command string) domain.CommandResult {
			deadline, _ = ctx.Deadline()
			return domain.CommandResult{}
		})
		_, err := flow.NewInstaller(runner, cmd, flow.WithInstallTimeout(time.Minute)).Install(ctx)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	})
}

type runnerFunc func(ctx context.Context, command string) domain.CommandResult

func (f runnerFunc) Run(ctx context.Context, command string) domain.CommandResult {
	return f(ctx, command)
}
