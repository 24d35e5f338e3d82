package validator

import (
	"testing"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/dsl"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_PizzaBotIsClean(t *testing.T) {
	report := Analyze(presets.PizzaBot())
	assert.True(t, report.OK(), report.Findings())
	assert.NoError(t, report.Err())
}

func TestAnalyze_FindsProblems(t *testing.T) {
	b := dsl.New("messy").Initial("start").Accept("end")
	b.State("start").
		On("go", "Z0").Push("A").Go("middle").
		On("skip", "Z0").Keep().Go("stuck")
	b.State("middle").
		On("back", "B").Pop().Go("start")
	b.State("island").
		On("x", "Z0").Keep().Go("end")
	table, err := b.Build()
	require.NoError(t, err)

	report := Analyze(table)
	assert.False(t, report.OK())
	assert.Equal(t, []domain.State{"island", "end"}, report.Unreachable)
	assert.Equal(t, []domain.State{"stuck"}, report.DeadEnds)
	assert.Equal(t, []domain.Symbol{"B"}, report.NeverPushed)
	assert.Equal(t, []domain.Symbol{"A"}, report.NeverRead)
	assert.True(t, report.NoAcceptingReachable)

	err = report.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 6 problems")
	assert.Contains(t, err.Error(), `state "island" is unreachable`)
}
