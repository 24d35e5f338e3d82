package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep    EventType = "step"
	EventStuck   EventType = "stuck"
	EventVerdict EventType = "verdict"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Table     string    `json:"table,omitempty"`
}

// StepEvent is emitted after every step, matched or not.
type StepEvent struct {
	EventBase
	Entry TraceEntry `json:"entry"`
}

// VerdictEvent is emitted once per run.
type VerdictEvent struct {
	EventBase
	Steps   int     `json:"steps"`
	Verdict Verdict `json:"verdict"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep    func(context.Context, *StepEvent)
	OnVerdict func(context.Context, *VerdictEvent)
}

// ComposeHooks calls every non-nil hook in order.
func ComposeHooks(all ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range all {
		h := h
		if h.OnStep != nil {
			prev := out.OnStep
			out.OnStep = func(ctx context.Context, e *StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnStep(ctx, e)
			}
		}
		if h.OnVerdict != nil {
			prev := out.OnVerdict
			out.OnVerdict = func(ctx context.Context, e *VerdictEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnVerdict(ctx, e)
			}
		}
	}
	return out
}
