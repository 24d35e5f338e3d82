package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Report lists structural warnings about a table. A table that passed
// domain.FromRules is always runnable; these findings point at rules or
// states that can never contribute to an accepted run.
type Report struct {
	// Unreachable states cannot be entered from the initial state, whatever the stack holds.
	Unreachable []domain.State `json:"unreachable,omitempty"`
	// DeadEnds are reachable, non-accepting states with no outgoing rules.
	DeadEnds []domain.State `json:"dead_ends,omitempty"`
	// NeverPushed symbols are matched as stack-top by some rule but no rule pushes them.
	NeverPushed []domain.Symbol `json:"never_pushed,omitempty"`
	// NeverRead symbols are pushed by some rule but no rule matches them as stack-top.
	NeverRead []domain.Symbol `json:"never_read,omitempty"`
	// NoAcceptingReachable is set when no accepting state is reachable at all.
	NoAcceptingReachable bool `json:"no_accepting_reachable,omitempty"`
}

// OK reports whether the analysis found nothing.
func (r Report) OK() bool {
	return len(r.Unreachable) == 0 &&
		len(r.DeadEnds) == 0 &&
		len(r.NeverPushed) == 0 &&
		len(r.NeverRead) == 0 &&
		!r.NoAcceptingReachable
}

// Findings renders each warning as a sentence.
func (r Report) Findings() []string {
	var out []string
	if r.NoAcceptingReachable {
		out = append(out, "no accepting state is reachable from the initial state")
	}
	for _, s := range r.Unreachable {
		out = append(out, fmt.Sprintf("state %q is unreachable", s))
	}
	for _, s := range r.DeadEnds {
		out = append(out, fmt.Sprintf("state %q is a dead end (no outgoing rules, not accepting)", s))
	}
	for _, s := range r.NeverPushed {
		out = append(out, fmt.Sprintf("symbol %q is matched but never pushed", s))
	}
	for _, s := range r.NeverRead {
		out = append(out, fmt.Sprintf("symbol %q is pushed but never matched", s))
	}
	return out
}

// Err returns the findings as a single error, or nil.
func (r Report) Err() error {
	findings := r.Findings()
	if len(findings) == 0 {
		return nil
	}
	return fmt.Errorf("found %d problems:\n- %s", len(findings), strings.Join(findings, "\n- "))
}

// Analyze crawls the state graph from the initial state.
// The stack is ignored, so reachability is an over-approximation:
// "unreachable" is certain, "reachable" is not.
func Analyze(table *domain.TransitionTable) Report {
	var report Report
	rules := table.Rules()

	edges := make(map[domain.State][]domain.State)
	pushed := make(map[domain.Symbol]bool)
	read := make(map[domain.Symbol]bool)
	var pushedOrder, readOrder []domain.Symbol

	for _, r := range rules {
		edges[r.From] = append(edges[r.From], r.To)
		if r.Top != table.Bottom() && !read[r.Top] {
			read[r.Top] = true
			readOrder = append(readOrder, r.Top)
		}
		if r.Action.Op == domain.OpPush && !pushed[r.Action.Symbol] {
			pushed[r.Action.Symbol] = true
			pushedOrder = append(pushedOrder, r.Action.Symbol)
		}
	}

	visited := map[domain.State]bool{}
	queue := []domain.State{table.Initial()}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range edges[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	acceptingReachable := false
	for _, s := range table.States() {
		if !visited[s] {
			report.Unreachable = append(report.Unreachable, s)
			continue
		}
		if table.IsAccepting(s) {
			acceptingReachable = true
			continue
		}
		if len(edges[s]) == 0 {
			report.DeadEnds = append(report.DeadEnds, s)
		}
	}
	report.NoAcceptingReachable = !acceptingReachable

	for _, s := range readOrder {
		if !pushed[s] {
			report.NeverPushed = append(report.NeverPushed, s)
		}
	}
	for _, s := range pushedOrder {
		if !read[s] {
			report.NeverRead = append(report.NeverRead, s)
		}
	}
	return report
}
