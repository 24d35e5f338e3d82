package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/pushdown/internal/presentation/graph"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMermaid(t *testing.T) {
	out := graph.Mermaid(presets.PizzaBot(), nil)

	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	for _, want := range []string{
		`__start__(( )) --> q_start`,
		`q_start(("q_start"))`,
		`q_done((("q_done")))`,
		`q_start -- "order, Z0 / push O" --> q_ordering`,
		`q_ordering -- "pizza, O / push P<br/>toppings, P / push T<br/>done, T / pop<br/>done, P / pop" --> q_ordering`,
		`q_ordering -- "pay, O / pop" --> q_done`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Overlay")
}

func TestMermaid_Overlay(t *testing.T) {
	res, err := simulate("order", "pizza", "pay")
	require.NoError(t, err)

	out := graph.Mermaid(presets.PizzaBot(), graph.OverlayFromResult(res))
	assert.Contains(t, out, "classDef visited")
	assert.Contains(t, out, "class q_start visited;")
	assert.Contains(t, out, "class q_ordering current;")
	assert.Equal(t, 1, strings.Count(out, "class q_start visited;"))
	assert.NotContains(t, out, "class q_done")
}

func TestOverlayFromResult_EmptyRun(t *testing.T) {
	res, err := simulate()
	require.NoError(t, err)
	overlay := graph.OverlayFromResult(res)
	assert.Equal(t, []domain.State{"q_start"}, overlay.VisitedStates)
	assert.Equal(t, domain.State("q_start"), overlay.CurrentState)
	assert.Nil(t, graph.OverlayFromResult(nil))
}

func TestDOT(t *testing.T) {
	res, err := simulate("order", "pay")
	require.NoError(t, err)

	out := graph.DOT(presets.PizzaBot(), graph.OverlayFromResult(res))
	for _, want := range []string{
		`digraph "pizza-bot" {`,
		`rankdir=LR;`,
		`"" -> "q_start";`,
		`"q_done" [shape=doublecircle, style=filled, fillcolor="#ffeb3b"];`,
		`"q_start" -> "q_ordering" [label="order, Z0 / push O"];`,
		`"q_ordering" -> "q_done" [label="pay, O / pop"];`,
		`label="pizza, O / push P\ntoppings, P / push T\ndone, T / pop\ndone, P / pop"`,
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "}\n"))
}
