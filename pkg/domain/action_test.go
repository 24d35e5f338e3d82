package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStackAction(t *testing.T) {
	tests := []struct {
		in   string
		want StackAction
	}{
		{"push(P)", Push("P")},
		{"PUSH(O)", Push("O")},
		{" push T ", Push("T")},
		{"push( O )", Push("O")},
		{"pop", Pop()},
		{"Pop", Pop()},
		{"none", NoOp()},
		{"", NoOp()},
		{"ε", NoOp()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStackAction(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStackAction_Malformed(t *testing.T) {
	for _, in := range []string{"push", "push()", "push(P", "push(P Q)", "swap", "pop(O)"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseStackAction(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestStackAction_TextRoundTrip(t *testing.T) {
	for _, a := range []StackAction{Push("P"), Pop(), NoOp()} {
		text, err := a.MarshalText()
		require.NoError(t, err)

		var back StackAction
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, a, back)
	}
	assert.Equal(t, "push(P)", Push("P").String())
	assert.Equal(t, "pop", Pop().String())
	assert.Equal(t, "none", NoOp().String())
}

func TestPushable(t *testing.T) {
	assert.True(t, Pushable("P"))
	assert.True(t, Pushable("x-1"))
	assert.False(t, Pushable(""))
	assert.False(t, Pushable("two words"))
	assert.False(t, Pushable("f(x)"))
	assert.False(t, Pushable("tab\there"))
}
