package observability_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/aretw0/reddisetgo/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnProcessStart(ctx, &domain.ProcessEvent{Command: "near --version"})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InFlight))

	hooks.OnProcessFinish(ctx, &domain.ProcessEvent{Command: "near --version", Duration: time.Second})
	hooks.OnProcessFinish(ctx, &domain.ProcessEvent{
		Command:  "npm install -g near-cli",
		ExitCode: 243,
		Err:      fmt.Errorf("%w: exit status 243", domain.ErrNonZeroExit),
	})
	hooks.OnFlowFinish(ctx, &domain.FlowEvent{
		Selection: domain.DemoSelection{Chain: domain.ChainNear, Demo: domain.DemoKeys},
		Err:       domain.ErrUnauthenticated,
	})
	hooks.OnFlowFinish(ctx, &domain.FlowEvent{Selection: domain.DemoSelection{Chain: domain.ChainSolana}})

	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProcessRuns.WithLabelValues("near", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProcessRuns.WithLabelValues("npm", "exit_243")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FlowRuns.WithLabelValues("Near", "keys", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FlowRuns.WithLabelValues("Solana", "none", "ok")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.ProcessDuration))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestProcessOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"Ok", nil, 0, "ok"},
		{"Timeout", domain.ErrTimeout, -1, "timeout"},
		{"Spawn", domain.ErrSpawn, -1, "spawn_error"},
		{"Exit", domain.ErrNonZeroExit, 1, "exit_1"},
		{"Cancelled", context.Canceled, -1, "cancelled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := observability.ProcessOutcome(&domain.ProcessEvent{Err: tt.err, ExitCode: tt.code})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProgram(t *testing.T) {
	assert.Equal(t, "near", observability.Program("  near keys bob.testnet"))
	assert.Equal(t, "unknown", observability.Program(" "))
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LoggingHooks(logger)

	hooks.OnProcessFinish(context.Background(), &domain.ProcessEvent{Command: "near login", ExitCode: 1})
	hooks.OnFlowFinish(context.Background(), &domain.FlowEvent{Selection: domain.DemoSelection{Chain: domain.ChainNear, Demo: domain.DemoLogin}})

	assert.Contains(t, buf.String(), `msg=process_finish command="near login" exit_code=1`)
	assert.Contains(t, buf.String(), "msg=flow_finish chain=Near demo=login")
}
