package pushdown_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_Properties(t *testing.T) {
	table := presets.PizzaBot()
	inputs := [][]string{
		nil,
		{"order"},
		{"pizza"},
		{"order", "pay"},
		{"order", "pizza", "pay"},
		{"order", "pizza", "toppings", "done", "pay"},
		{"order", "pizza", "toppings", "done", "done", "pay"},
		{"order", "pizza", "toppings", "done", "done", "pay", "pay"},
		{"order", "order", "order"},
	}

	for _, in := range inputs {
		cmds := domain.Commands(in...)
		res, err := pushdown.Simulate(table, cmds)
		require.NoError(t, err)

		again, err := pushdown.Simulate(table, cmds)
		require.NoError(t, err)
		assert.Equal(t, res, again, "deterministic for %v", in)

		assert.LessOrEqual(t, len(res.Trace), len(cmds))
		assert.Equal(t, !res.Verdict.Stuck(), len(res.Trace) == len(cmds), "trace length for %v", in)

		for _, e := range res.Trace {
			assert.GreaterOrEqual(t, len(e.StackAfter), 1, "bottom marker kept")
			assert.Equal(t, domain.DefaultBottom, e.StackAfter[0])
		}
	}
}

func TestSimulate_EmptyInputFollowsInitialState(t *testing.T) {
	res, err := pushdown.Simulate(presets.PizzaBot(), nil)
	require.NoError(t, err)
	assert.False(t, res.Verdict.Accepted())
	assert.Empty(t, res.Trace)
}

func TestNew_DefaultsToPizzaBot(t *testing.T) {
	eng, err := pushdown.New(context.Background())
	require.NoError(t, err)
	assert.Same(t, presets.PizzaBot(), eng.Table())
	assert.Nil(t, eng.Store())
}

func TestNew_LoaderErrorsAreConfigurationErrors(t *testing.T) {
	_, err := pushdown.New(context.Background(),
		pushdown.WithLoader(memory.NewLoader(domain.Definition{Initial: "a", Accepting: []string{"a"}})))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestEngine_RunRecordsToStore(t *testing.T) {
	store := memory.NewStore()
	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	eng, err := pushdown.New(context.Background(),
		pushdown.WithRunStore(store),
		pushdown.WithClock(func() time.Time { return fixed }),
	)
	require.NoError(t, err)

	ctx := context.Background()
	rec, err := eng.Run(ctx, domain.Commands("order", "pay"))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, fixed, rec.CreatedAt)
	assert.True(t, rec.Result.Verdict.Accepted())

	ids, err := eng.Runs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{rec.ID}, ids)

	loaded, err := eng.LoadRun(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Result.Verdict, loaded.Result.Verdict)
}

func TestEngine_RunWithoutStore(t *testing.T) {
	eng, err := pushdown.New(context.Background())
	require.NoError(t, err)

	rec, err := eng.Run(context.Background(), domain.Commands("pizza"))
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonNoMatchingRule, rec.Result.Verdict.Reason)

	ids, err := eng.Runs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = eng.LoadRun(context.Background(), rec.ID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}
