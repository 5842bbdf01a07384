package observability

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/aretw0/reddisetgo/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "reddisetgo"

// Metrics holds the collectors fed by lifecycle hooks.
type Metrics struct {
	ProcessRuns     *prometheus.CounterVec
	ProcessDuration *prometheus.HistogramVec
	FlowRuns        *prometheus.CounterVec
	FlowDuration    *prometheus.HistogramVec
	InFlight        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ProcessRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "process_runs_total",
			Help:      "External commands run, by program and outcome.",
		}, []string{"program", "outcome"}),
		ProcessDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "process_duration_seconds",
			Help:      "Duration of external commands.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}, []string{"program"}),
		FlowRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "demo_runs_total",
			Help:      "Demo leaves reached, by chain, demo and outcome.",
		}, []string{"chain", "demo", "outcome"}),
		FlowDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "demo_duration_seconds",
			Help:      "Duration of demo leaves.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 4, 8),
		}, []string{"chain", "demo"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_in_flight",
			Help:      "External commands currently running.",
		}),
	}

	for _, c := range []prometheus.Collector{m.ProcessRuns, m.ProcessDuration, m.FlowRuns, m.FlowDuration, m.InFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnProcessStart: func(ctx context.Context, e *domain.ProcessEvent) {
			m.InFlight.Inc()
		},
		OnProcessFinish: func(ctx context.Context, e *domain.ProcessEvent) {
			m.InFlight.Dec()
			program := Program(e.Command)
			m.ProcessRuns.WithLabelValues(program, ProcessOutcome(e)).Inc()
			m.ProcessDuration.WithLabelValues(program).Observe(e.Duration.Seconds())
		},
		OnFlowFinish: func(ctx context.Context, e *domain.FlowEvent) {
			demo := string(e.Selection.Demo)
			if demo == "" {
				demo = "none"
			}
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			chain := string(e.Selection.Chain)
			m.FlowRuns.WithLabelValues(chain, demo, outcome).Inc()
			m.FlowDuration.WithLabelValues(chain, demo).Observe(e.Duration.Seconds())
		},
	}
}

// Program returns the first word of a command line, keeping label cardinality bounded.
func Program(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "unknown"
	}
	return fields[0]
}

// ProcessOutcome classifies a finished command for the outcome label.
func ProcessOutcome(e *domain.ProcessEvent) string {
	switch {
	case e.Err == nil:
		return "ok"
	case errors.Is(e.Err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(e.Err, domain.ErrSpawn):
		return "spawn_error"
	case errors.Is(e.Err, domain.ErrNonZeroExit):
		return "exit_" + strconv.Itoa(e.ExitCode)
	default:
		return "cancelled"
	}
}
