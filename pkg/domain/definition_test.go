package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition_RoundTrip(t *testing.T) {
	table, err := FromRules(pizzaRules(), "q_start", []State{"q_done"},
		WithName("pizza"),
		WithInputAlphabet(Commands("order", "pizza", "toppings", "done", "pay")...),
		WithStackAlphabet("O", "P", "T"),
	)
	require.NoError(t, err)

	def := table.Definition()
	assert.Equal(t, "push(O)", def.Rules[0].Action)
	assert.Equal(t, "pop", def.Rules[5].Action)
	assert.Equal(t, "Z0", def.Bottom)

	rebuilt, err := FromDefinition(def)
	require.NoError(t, err)
	assert.Equal(t, def, rebuilt.Definition())
	assert.Equal(t, table.Rules(), rebuilt.Rules())
	assert.Equal(t, table.States(), rebuilt.States())
	assert.Equal(t, table.Accepting(), rebuilt.Accepting())
}

func TestFromDefinition_MalformedActionRow(t *testing.T) {
	def := Definition{
		Initial:   "a",
		Accepting: []string{"b"},
		Rules: []RuleRow{
			{From: "a", Input: "x", Top: "Z0", To: "b", Action: "push(Q)"},
			{From: "b", Input: "y", Top: "Q", To: "b", Action: "explode"},
		},
	}
	_, err := FromDefinition(def)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	errs := ConfigErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, KindMalformedAction, errs[0].Kind)
	assert.Contains(t, errs[0].Detail, "row 2")
}

func TestFromRules_RejectsSymbolsTheRowFormCannotCarry(t *testing.T) {
	_, err := FromRules([]Rule{
		{From: "a", Command: "go", Top: "Z0", To: "b", Action: Push("two words")},
		{From: "b", Command: "go", Top: "two words", To: "b", Action: Push("f(x)")},
	}, "a", []State{"b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	errs := ConfigErrors(err)
	require.Len(t, errs, 2)
	for _, ce := range errs {
		assert.Equal(t, KindMalformedAction, ce.Kind)
	}
	assert.Contains(t, errs[0].Detail, `"two words"`)
	assert.Contains(t, errs[1].Detail, `"f(x)"`)
}

func TestDefinition_RoundTripUnusualSymbols(t *testing.T) {
	table, err := FromRules([]Rule{
		{From: "a", Command: "go", Top: "Z0", To: "b", Action: Push("x-1")},
		{From: "b", Command: "go on", Top: "x-1", To: "b", Action: Push("λ")},
		{From: "b", Command: "stop", Top: "λ", To: "b", Action: Pop()},
	}, "a", []State{"b"})
	require.NoError(t, err)

	def := table.Definition()
	assert.Equal(t, "push(x-1)", def.Rules[0].Action)
	assert.Equal(t, "push(λ)", def.Rules[1].Action)

	rebuilt, err := FromDefinition(def)
	require.NoError(t, err)
	assert.Equal(t, table.Rules(), rebuilt.Rules())
	assert.Equal(t, def, rebuilt.Definition())
}
