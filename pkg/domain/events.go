package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventProcessStart  EventType = "process_start"
	EventProcessFinish EventType = "process_finish"
	EventFlowFinish    EventType = "flow_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ProcessEvent represents the start or end of an external command.
type ProcessEvent struct {
	EventBase
	Command  string        `json:"command"`
	Duration time.Duration `json:"duration,omitempty"`
	ExitCode int           `json:"exit_code,omitempty"`
	Err      error         `json:"-"`
}

// FlowEvent represents the completion of a demo leaf.
type FlowEvent struct {
	EventBase
	Selection DemoSelection `json:"selection"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for orchestrator observability.
type LifecycleHooks struct {
	OnProcessStart  func(context.Context, *ProcessEvent)
	OnProcessFinish func(context.Context, *ProcessEvent)
	OnFlowFinish    func(context.Context, *FlowEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnProcessStart:  chainHook(h.OnProcessStart, other.OnProcessStart),
		OnProcessFinish: chainHook(h.OnProcessFinish, other.OnProcessFinish),
		OnFlowFinish:    chainHook(h.OnFlowFinish, other.OnFlowFinish),
	}
}

func chainHook[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
