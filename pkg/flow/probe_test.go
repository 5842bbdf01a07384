package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/reddisetgo/internal/testutils"
	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/flow"
	"github.com/stretchr/testify/assert"
)

func TestClassifyProbe(t *testing.T) {
	tests := []struct {
		name string
		res  domain.CommandResult
		want domain.ToolStatus
	}{
		{"Clean Version", domain.CommandResult{Stdout: "3.4.2\n"}, domain.ToolPresent},
		{"Spawn Error", domain.CommandResult{Err: domain.ErrSpawn}, domain.ToolAbsent},
		{"Not On Path", testutils.Exit(127, "sh: 1: near: not found\n"), domain.ToolAbsent},
		{"Exit Error Without Stderr", domain.CommandResult{ExitCode: 1, Err: errors.New("exit 1")}, domain.ToolAbsent},
		{"Stderr On Success", domain.CommandResult{Stdout: "3.4.2", Stderr: "crashed"}, domain.ToolAbsent},
		{"Whitespace Stderr", domain.CommandResult{Stdout: "3.4.2", Stderr: " \n"}, domain.ToolPresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flow.ClassifyProbe(tt.res))
		})
	}
}

func TestProbe_Check(t *testing.T) {
	runner := testutils.NewScriptedRunner().
		On("near --version", testutils.Stdout("3.4.2\n"), testutils.Exit(127, "near: not found"))
	probe := flow.NewProbe(runner, "near --version", nil)

	assert.Equal(t, domain.ToolPresent, probe.Check(context.Background()))
	assert.Equal(t, domain.ToolAbsent, probe.Check(context.Background()))
	assert.Equal(t, 2, runner.Calls("near --version"))
}
