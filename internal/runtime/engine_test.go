package runtime_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/pushdown/internal/runtime"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/dsl"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulate(t *testing.T, table *domain.TransitionTable, tokens ...string) *domain.Result {
	t.Helper()
	res, err := runtime.NewEngine().Simulate(context.Background(), table, domain.Commands(tokens...))
	require.NoError(t, err)
	return res
}

func TestEngine_PizzaScenarios(t *testing.T) {
	table := presets.PizzaBot()

	tests := []struct {
		name       string
		input      []string
		outcome    domain.Outcome
		reason     domain.Reason
		finalState domain.State
		finalStack []domain.Symbol
		steps      int
	}{
		{
			name:       "complete order",
			input:      []string{"order", "pizza", "toppings", "done", "done", "pay"},
			outcome:    domain.OutcomeAccepted,
			reason:     domain.ReasonAcceptingState,
			finalState: "q_done",
			finalStack: []domain.Symbol{"Z0"},
			steps:      6,
		},
		{
			name:       "second pizza after closing the first",
			input:      []string{"order", "pizza", "done", "pizza", "toppings", "done", "done", "pay"},
			outcome:    domain.OutcomeAccepted,
			reason:     domain.ReasonAcceptingState,
			finalState: "q_done",
			finalStack: []domain.Symbol{"Z0"},
			steps:      8,
		},
		{
			name:       "paying with toppings open",
			input:      []string{"order", "pizza", "toppings", "pay"},
			outcome:    domain.OutcomeRejected,
			reason:     domain.ReasonNoMatchingRule,
			finalState: "q_ordering",
			finalStack: []domain.Symbol{"Z0", "O", "P", "T"},
			steps:      4,
		},
		{
			name:       "pizza toppings pay without order",
			input:      []string{"pizza", "toppings", "pay"},
			outcome:    domain.OutcomeRejected,
			reason:     domain.ReasonNoMatchingRule,
			finalState: "q_start",
			finalStack: []domain.Symbol{"Z0"},
			steps:      1,
		},
		{
			name:       "pizza without order is stuck at step 1",
			input:      []string{"pizza"},
			outcome:    domain.OutcomeRejected,
			reason:     domain.ReasonNoMatchingRule,
			finalState: "q_start",
			finalStack: []domain.Symbol{"Z0"},
			steps:      1,
		},
		{
			name:       "order then pay",
			input:      []string{"order", "pay"},
			outcome:    domain.OutcomeAccepted,
			reason:     domain.ReasonAcceptingState,
			finalState: "q_done",
			finalStack: []domain.Symbol{"Z0"},
			steps:      2,
		},
		{
			name:       "paying with a pizza open",
			input:      []string{"order", "pizza", "pay"},
			outcome:    domain.OutcomeRejected,
			reason:     domain.ReasonNoMatchingRule,
			finalState: "q_ordering",
			finalStack: []domain.Symbol{"Z0", "O", "P"},
			steps:      3,
		},
		{
			name:       "single done leaves the pizza open",
			input:      []string{"order", "pizza", "toppings", "done", "pay"},
			outcome:    domain.OutcomeRejected,
			reason:     domain.ReasonNoMatchingRule,
			finalState: "q_ordering",
			finalStack: []domain.Symbol{"Z0", "O", "P"},
			steps:      5,
		},
		{
			name:       "input exhausted before paying",
			input:      []string{"order", "pizza"},
			outcome:    domain.OutcomeRejected,
			reason:     domain.ReasonNonFinalState,
			finalState: "q_ordering",
			finalStack: []domain.Symbol{"Z0", "O", "P"},
			steps:      2,
		},
		{
			name:       "command outside the alphabet",
			input:      []string{"order", "refund"},
			outcome:    domain.OutcomeRejected,
			reason:     domain.ReasonUnknownCommand,
			finalState: "q_ordering",
			finalStack: []domain.Symbol{"Z0", "O"},
			steps:      2,
		},
		{
			name:       "empty input in a non-accepting initial state",
			input:      nil,
			outcome:    domain.OutcomeRejected,
			reason:     domain.ReasonNonFinalState,
			finalState: "q_start",
			finalStack: []domain.Symbol{"Z0"},
			steps:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := simulate(t, table, tt.input...)
			assert.Equal(t, tt.outcome, res.Verdict.Outcome)
			assert.Equal(t, tt.reason, res.Verdict.Reason)
			assert.Equal(t, tt.finalState, res.Final.State)
			assert.Equal(t, tt.finalStack, res.Final.Stack)
			assert.Len(t, res.Trace, tt.steps)
			assert.LessOrEqual(t, len(res.Trace), len(tt.input))
			assert.Equal(t, domain.Configuration{State: "q_start", Stack: []domain.Symbol{"Z0"}}, res.Initial)
			assert.Equal(t, presets.PizzaBotName, res.Table)
		})
	}
}

func TestEngine_StuckVerdictAndTrace(t *testing.T) {
	res := simulate(t, presets.PizzaBot(), "order", "pizza", "pay", "done")

	v := res.Verdict
	assert.Equal(t, 3, v.Step)
	assert.Equal(t, domain.Command("pay"), v.Command)
	assert.Equal(t, domain.State("q_ordering"), v.State)
	assert.Equal(t, domain.Symbol("P"), v.Top)
	assert.Equal(t, "stuck at step 3 consuming command pay in state q_ordering with stack-top P", v.Message())

	// The command after the failure is never consumed.
	require.Len(t, res.Trace, 3)
	last := res.Trace[2]
	assert.False(t, last.Matched)
	assert.False(t, last.Consumed)
	assert.Equal(t, domain.NotConsumed, last.Input())
	assert.Nil(t, last.Rule)
	assert.Equal(t, last.StackBefore, last.StackAfter)
	assert.Equal(t, last.From, last.To)
}

func TestEngine_TraceRecordsEveryStep(t *testing.T) {
	res := simulate(t, presets.PizzaBot(), "order", "pizza", "toppings", "done", "done", "pay")

	wantAfter := [][]domain.Symbol{
		{"Z0", "O"},
		{"Z0", "O", "P"},
		{"Z0", "O", "P", "T"},
		{"Z0", "O", "P"},
		{"Z0", "O"},
		{"Z0"},
	}
	for i, e := range res.Trace {
		assert.Equal(t, i+1, e.Index)
		assert.True(t, e.Matched)
		assert.True(t, e.Consumed)
		require.NotNil(t, e.Rule)
		assert.Equal(t, wantAfter[i], e.StackAfter, "step %d", e.Index)
		if i > 0 {
			assert.Equal(t, res.Trace[i-1].StackAfter, e.StackBefore)
			assert.Equal(t, res.Trace[i-1].To, e.From)
		}
	}
	assert.Equal(t, []domain.State{"q_start", "q_ordering", "q_ordering", "q_ordering", "q_ordering", "q_ordering", "q_done"}, res.Trace.States())
}

func TestEngine_TraceStacksDoNotAlias(t *testing.T) {
	res := simulate(t, presets.PizzaBot(), "order", "pizza")
	res.Trace[0].StackAfter[0] = "mutated"
	assert.Equal(t, domain.Symbol("Z0"), res.Trace[1].StackBefore[0])
	assert.Equal(t, domain.Symbol("Z0"), res.Final.Stack[0])
}

func TestEngine_Deterministic(t *testing.T) {
	table := presets.PizzaBot()
	input := domain.Commands("order", "pizza", "toppings", "done", "done", "pay", "pay")
	engine := runtime.NewEngine()

	first, err := engine.Simulate(context.Background(), table, input)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := engine.Simulate(context.Background(), table, input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEngine_EmptyInputAcceptedWhenInitialIsFinal(t *testing.T) {
	b := dsl.New("balanced").Initial("q").Accept("q")
	b.State("q").
		On("(", "Z0").Push("X").Go("q").
		On("(", "X").Push("X").Go("q").
		On(")", "X").Pop().Go("q")
	table := b.MustBuild()

	res := simulate(t, table)
	assert.True(t, res.Verdict.Accepted())
	assert.Empty(t, res.Trace)

	assert.True(t, simulate(t, table, "(", "(", ")", ")").Verdict.Accepted())
	assert.Equal(t, domain.ReasonNonFinalState, simulate(t, table, "(", "(", ")").Verdict.Reason)
	assert.Equal(t, domain.ReasonNoMatchingRule, simulate(t, table, ")").Verdict.Reason)
}

func TestEngine_RepeatedCommandsAreIndependentSteps(t *testing.T) {
	b := dsl.New("counter").Initial("q").Accept("q")
	b.State("q").
		On("tick", "Z0").Push("I").Go("q").
		On("tick", "I").Push("I").Go("q")
	res := simulate(t, b.MustBuild(), "tick", "tick", "tick")

	require.Len(t, res.Trace, 3)
	assert.Equal(t, []domain.Symbol{"Z0", "I", "I", "I"}, res.Final.Stack)
}

func TestEngine_NilTableIsInternalFault(t *testing.T) {
	_, err := runtime.NewEngine().Simulate(context.Background(), nil, nil)
	assert.True(t, errors.Is(err, domain.ErrInternalFault))
}

func TestEngine_Hooks(t *testing.T) {
	var steps, stuck int
	var verdict *domain.VerdictEvent
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			if e.Type == domain.EventStuck {
				stuck++
				return
			}
			steps++
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			verdict = e
		},
	}))

	_, err := engine.Simulate(context.Background(), presets.PizzaBot(), domain.Commands("order", "pizza", "pay"))
	require.NoError(t, err)
	assert.Equal(t, 2, steps)
	assert.Equal(t, 1, stuck)
	require.NotNil(t, verdict)
	assert.Equal(t, 3, verdict.Steps)
	assert.Equal(t, domain.ReasonNoMatchingRule, verdict.Verdict.Reason)
	assert.Equal(t, presets.PizzaBotName, verdict.Table)
}

func TestEngine_ConcurrentRunsShareTable(t *testing.T) {
	table := presets.PizzaBot()
	engine := runtime.NewEngine()
	inputs := [][]string{
		{"order", "pizza", "toppings", "done", "done", "pay"},
		{"order", "pizza", "pay"},
		{"pizza"},
		{"order", "pay"},
	}

	var wg sync.WaitGroup
	results := make([]*domain.Result, 40)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := engine.Simulate(context.Background(), table, domain.Commands(inputs[i%len(inputs)]...))
			if err == nil {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.NotNil(t, res)
		want := simulate(t, table, inputs[i%len(inputs)]...)
		assert.Equal(t, want, res)
	}
}
