package dsl

import "github.com/aretw0/pushdown/pkg/domain"

// StateBuilder declares the rules leaving one state.
type StateBuilder struct {
	state   domain.State
	builder *Builder
}

// On starts a rule matching cmd with top on the stack.
func (s *StateBuilder) On(cmd domain.Command, top domain.Symbol) *RuleBuilder {
	return &RuleBuilder{
		parent: s,
		rule: domain.Rule{
			From:    s.state,
			Command: cmd,
			Top:     top,
			Action:  domain.NoOp(),
		},
	}
}

// RuleBuilder configures a single rule. Go commits it.
type RuleBuilder struct {
	parent *StateBuilder
	rule   domain.Rule
}

// Push makes the rule push sym.
func (r *RuleBuilder) Push(sym domain.Symbol) *RuleBuilder {
	r.rule.Action = domain.Push(sym)
	return r
}

// Pop makes the rule pop the matched stack-top.
func (r *RuleBuilder) Pop() *RuleBuilder {
	r.rule.Action = domain.Pop()
	return r
}

// Keep leaves the stack untouched (the default).
func (r *RuleBuilder) Keep() *RuleBuilder {
	r.rule.Action = domain.NoOp()
	return r
}

// Go sets the target state, records the rule and returns to the state builder.
func (r *RuleBuilder) Go(to domain.State) *StateBuilder {
	r.rule.To = to
	r.parent.builder.rules = append(r.parent.builder.rules, r.rule)
	return r.parent
}
