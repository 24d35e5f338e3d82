package domain

import (
	"fmt"
	"strings"
)

// TraceEntry records one simulation step.
// Stacks are ordered bottom to top and never alias the live stack.
type TraceEntry struct {
	Index       int      `json:"index"`
	Command     Command  `json:"command"`
	Consumed    bool     `json:"consumed"`
	Matched     bool     `json:"matched"`
	From        State    `json:"from"`
	To          State    `json:"to"`
	StackBefore []Symbol `json:"stack_before"`
	StackAfter  []Symbol `json:"stack_after"`
	Rule        *Rule    `json:"rule,omitempty"`
}

// Input returns the consumed command, or NotConsumed if the run halted on this step.
func (e TraceEntry) Input() string {
	if !e.Consumed {
		return NotConsumed
	}
	return string(e.Command)
}

// Top returns the stack-top the step was looked up with.
func (e TraceEntry) Top() Symbol {
	if len(e.StackBefore) == 0 {
		return ""
	}
	return e.StackBefore[len(e.StackBefore)-1]
}

// Describe explains what the step did to the stack.
func (e TraceEntry) Describe() string {
	if !e.Matched || e.Rule == nil {
		return fmt.Sprintf("no transition for (%s, %s, %s)", e.From, e.Command, e.Top())
	}
	switch e.Rule.Action.Op {
	case OpPush:
		return fmt.Sprintf("push %s", e.Rule.Action.Symbol)
	case OpPop:
		return fmt.Sprintf("pop %s", e.Top())
	default:
		return "stack unchanged"
	}
}

// Trace is the ordered, append-only record of a run.
type Trace []TraceEntry

// States returns the sequence of states visited, starting with the first step's origin.
func (t Trace) States() []State {
	if len(t) == 0 {
		return nil
	}
	out := []State{t[0].From}
	for _, e := range t {
		out = append(out, e.To)
	}
	return out
}

// FormatStack renders symbols bottom to top, e.g. "[Z0 | O | P]".
func FormatStack(symbols []Symbol) string {
	if len(symbols) == 0 {
		return EmptyStack
	}
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = string(s)
	}
	return "[" + strings.Join(parts, " | ") + "]"
}
