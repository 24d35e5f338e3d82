package domain

import "fmt"

// RuleKey is the left-hand side of a rule. A table holds at most one rule per key.
type RuleKey struct {
	State   State
	Command Command
	Top     Symbol
}

func (k RuleKey) String() string {
	return fmt.Sprintf("(%s, %s, %s)", k.State, k.Command, k.Top)
}

// Rule moves the automaton from From to To when Command is read with Top on the stack.
type Rule struct {
	From    State       `json:"from" yaml:"from"`
	Command Command     `json:"input" yaml:"input"`
	Top     Symbol      `json:"top" yaml:"top"`
	To      State       `json:"to" yaml:"to"`
	Action  StackAction `json:"action" yaml:"action"`
}

// Key returns the lookup key of the rule.
func (r Rule) Key() RuleKey {
	return RuleKey{State: r.From, Command: r.Command, Top: r.Top}
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> (%s, %s)", r.Key(), r.To, r.Action)
}
