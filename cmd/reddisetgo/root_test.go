package main

import (
	"bytes"
	"testing"

	"github.com/aretw0/reddisetgo/internal/cli"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "reddisetgo version v")
}

func TestRootDefaultsToRun(t *testing.T) {
	assert.NotNil(t, rootCmd.RunE)
	for _, name := range []string{"resume", "metrics-addr", "no-banner"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}

func TestExitError(t *testing.T) {
	err := &exitError{code: cli.ExitQuit, err: domain.ErrUserQuit}
	assert.ErrorIs(t, err, domain.ErrUserQuit)
	assert.Equal(t, "exit status 130", (&exitError{code: cli.ExitInterrupted}).Error())
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"run", "doctor", "session", "graph", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, graphCmd.Flags().Lookup("overlay"))
}
