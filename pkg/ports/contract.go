package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractRecord(id string, at time.Time) *domain.RunRecord {
	return &domain.RunRecord{
		ID:        id,
		CreatedAt: at,
		Commands:  domain.Commands("order", "pay"),
		Result: domain.Result{
			Table:   "contract",
			Initial: domain.Configuration{State: "q_start", Stack: []domain.Symbol{"Z0"}},
			Final:   domain.Configuration{State: "q_done", Stack: []domain.Symbol{"Z0"}},
			Trace: domain.Trace{
				{Index: 1, Command: "order", Consumed: true, Matched: true, From: "q_start", To: "q_ordering",
					StackBefore: []domain.Symbol{"Z0"}, StackAfter: []domain.Symbol{"Z0", "O"}},
				{Index: 2, Command: "pay", Consumed: true, Matched: true, From: "q_ordering", To: "q_done",
					StackBefore: []domain.Symbol{"Z0", "O"}, StackAfter: []domain.Symbol{"Z0"}},
			},
			Verdict: domain.Verdict{Outcome: domain.OutcomeAccepted, Reason: domain.ReasonAcceptingState, State: "q_done"},
		},
	}
}

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	runID := "contract-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := contractRecord(runID, base)
		require.NoError(t, store.Save(ctx, rec), "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.ID, loaded.ID)
		assert.True(t, rec.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, rec.Commands, loaded.Commands)
		assert.Equal(t, rec.Result.Verdict, loaded.Result.Verdict)
		assert.Equal(t, rec.Result.Trace, loaded.Result.Trace)
		assert.Equal(t, rec.Result.Final, loaded.Result.Final)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		loaded.Commands[0] = "mutated"

		again, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, domain.Command("order"), again.Commands[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, runID), "Delete should not return error")

		_, err := store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice should not fail")
	})

	t.Run("List most recent first", func(t *testing.T) {
		older := runID + "-older"
		newer := runID + "-newer"
		require.NoError(t, store.Save(ctx, contractRecord(older, base)))
		require.NoError(t, store.Save(ctx, contractRecord(newer, base.Add(time.Minute))))
		defer func() {
			_ = store.Delete(ctx, older)
			_ = store.Delete(ctx, newer)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, older)
		assert.Contains(t, ids, newer)

		var iNewer, iOlder int
		for i, id := range ids {
			switch id {
			case newer:
				iNewer = i
			case older:
				iOlder = i
			}
		}
		assert.Less(t, iNewer, iOlder)
	})
}
