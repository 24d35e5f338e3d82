package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/pushdown/internal/logging"
	"github.com/aretw0/pushdown/pkg/domain"
)

// Engine simulates runs of a deterministic pushdown automaton.
// It holds no per-run state, so one Engine may serve concurrent runs.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for step-level debug records.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine. By default it logs nothing.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run is the configuration owned by a single simulation.
type run struct {
	state domain.State
	stack *Stack
	trace domain.Trace
}

// Simulate feeds commands to the automaton described by table, in order.
// Rejections are verdicts, not errors; the returned error is non-nil only
// when an internal invariant is broken (it then wraps domain.ErrInternalFault).
func (e *Engine) Simulate(ctx context.Context, table *domain.TransitionTable, commands []domain.Command) (*domain.Result, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil transition table", domain.ErrInternalFault)
	}

	r := &run{
		state: table.Initial(),
		stack: NewStack(table.Bottom()),
		trace: make(domain.Trace, 0, len(commands)),
	}
	result := &domain.Result{
		Table:   table.Name(),
		Initial: domain.Configuration{State: r.state, Stack: r.stack.Snapshot()},
	}

	for i, cmd := range commands {
		entry, err := e.step(table, r, i+1, cmd)
		if err != nil {
			return nil, err
		}
		r.trace = append(r.trace, entry)
		e.emitStep(ctx, table, entry)

		if !entry.Matched {
			reason := domain.ReasonNoMatchingRule
			if !table.Accepts(cmd) {
				reason = domain.ReasonUnknownCommand
			}
			result.Verdict = domain.Verdict{
				Outcome: domain.OutcomeRejected,
				Reason:  reason,
				State:   entry.From,
				Step:    entry.Index,
				Command: cmd,
				Top:     entry.Top(),
			}
			return e.finish(ctx, table, r, result), nil
		}
	}

	if table.IsAccepting(r.state) {
		result.Verdict = domain.Verdict{Outcome: domain.OutcomeAccepted, Reason: domain.ReasonAcceptingState, State: r.state}
	} else {
		result.Verdict = domain.Verdict{Outcome: domain.OutcomeRejected, Reason: domain.ReasonNonFinalState, State: r.state}
	}
	return e.finish(ctx, table, r, result), nil
}

// step applies at most one rule. An unmatched lookup leaves the configuration untouched.
func (e *Engine) step(table *domain.TransitionTable, r *run, index int, cmd domain.Command) (domain.TraceEntry, error) {
	top := r.stack.Peek()
	entry := domain.TraceEntry{
		Index:       index,
		Command:     cmd,
		From:        r.state,
		To:          r.state,
		StackBefore: r.stack.Snapshot(),
	}

	rule, ok := table.Lookup(r.state, cmd, top)
	if !ok {
		entry.StackAfter = r.stack.Snapshot()
		e.logger.Debug("no matching rule", "step", index, "state", r.state, "command", cmd, "top", top)
		return entry, nil
	}

	if err := r.stack.Apply(rule.Action); err != nil {
		return domain.TraceEntry{}, fmt.Errorf("step %d applying %s: %w", index, rule, err)
	}
	r.state = rule.To

	entry.Consumed = true
	entry.Matched = true
	entry.To = rule.To
	entry.StackAfter = r.stack.Snapshot()
	entry.Rule = &rule

	e.logger.Debug("step",
		"step", index,
		"command", cmd,
		"from", entry.From,
		"to", entry.To,
		"action", rule.Action.String(),
		"depth", r.stack.Depth(),
	)
	return entry, nil
}

func (e *Engine) finish(ctx context.Context, table *domain.TransitionTable, r *run, result *domain.Result) *domain.Result {
	result.Trace = r.trace
	result.Final = domain.Configuration{State: r.state, Stack: r.stack.Snapshot()}

	e.logger.Debug("run finished",
		"table", table.Name(),
		"steps", len(r.trace),
		"outcome", result.Verdict.Outcome,
		"reason", result.Verdict.Reason,
	)

	if e.hooks.OnVerdict != nil {
		e.hooks.OnVerdict(ctx, &domain.VerdictEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventVerdict, Table: table.Name()},
			Steps:     len(r.trace),
			Verdict:   result.Verdict,
		})
	}
	return result
}

func (e *Engine) emitStep(ctx context.Context, table *domain.TransitionTable, entry domain.TraceEntry) {
	if e.hooks.OnStep == nil {
		return
	}
	kind := domain.EventStep
	if !entry.Matched {
		kind = domain.EventStuck
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: kind, Table: table.Name()},
		Entry:     entry,
	})
}
