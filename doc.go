/*
Package pushdown is a deterministic pushdown automaton (PDA) engine for validating conversation flows.

A conversation is a sequence of discrete commands ("tokens"). The engine replays them against a
fixed TransitionTable, one (state, command, stack-top) lookup per step, and reports whether the
flow is Accepted or Rejected together with a full execution trace explaining why.

# Concept

The rule table is static configuration, built once (from Go code, YAML or JSON) and validated at
construction: duplicate keys or references to undeclared states are configuration errors, never
run-time surprises. Runs are independent and share only the immutable table, so any number of them
may execute concurrently.

A run never fails because of its input. Getting stuck (no rule for the next command) or running out
of input in a non-final state are ordinary Rejected verdicts, always accompanied by the trace.

# Usage

	package main

	import (
		"fmt"

		"github.com/aretw0/pushdown"
		"github.com/aretw0/pushdown/pkg/domain"
		"github.com/aretw0/pushdown/pkg/presets"
	)

	func main() {
		res, err := pushdown.Simulate(presets.PizzaBot(), domain.Commands("order", "pizza", "pay"))
		if err != nil {
			panic(err) // internal fault only
		}
		fmt.Println(res.Verdict)
		// rejected: stuck at step 3 consuming command pay in state q_ordering with stack-top P
	}

For recorded runs, metrics and custom tables, use New with options such as WithLoader,
WithRunStore and WithLifecycleHooks.
*/
package pushdown
