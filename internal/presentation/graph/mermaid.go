package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Overlay contains run data to highlight on the diagram.
type Overlay struct {
	VisitedStates []domain.State
	CurrentState  domain.State
}

// OverlayFromResult highlights the states a run went through and where it stopped.
func OverlayFromResult(res *domain.Result) *Overlay {
	if res == nil {
		return nil
	}
	visited := res.Trace.States()
	if len(visited) == 0 {
		visited = []domain.State{res.Initial.State}
	}
	return &Overlay{VisitedStates: visited, CurrentState: res.Final.State}
}

// edge groups every rule between the same pair of states.
type edge struct {
	from, to domain.State
	labels   []string
}

func collectEdges(table *domain.TransitionTable) []*edge {
	var edges []*edge
	index := make(map[[2]domain.State]*edge)
	for _, r := range table.Rules() {
		key := [2]domain.State{r.From, r.To}
		e, ok := index[key]
		if !ok {
			e = &edge{from: r.From, to: r.To}
			index[key] = e
			edges = append(edges, e)
		}
		e.labels = append(e.labels, ruleLabel(r))
	}
	return edges
}

// ruleLabel renders "command, top / action" with ε for an untouched stack.
func ruleLabel(r domain.Rule) string {
	action := "ε"
	switch r.Action.Op {
	case domain.OpPush:
		action = "push " + string(r.Action.Symbol)
	case domain.OpPop:
		action = "pop"
	}
	return fmt.Sprintf("%s, %s / %s", r.Command, r.Top, action)
}

// Mermaid produces a Mermaid flowchart of the table.
// Shapes:
// - Initial: entered from a hidden start point
// - Accepting: (((Double circle)))
// - Other states: ((Circle))
// Overlay styles (visited/current) are applied when overlay is non-nil.
func Mermaid(table *domain.TransitionTable, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	sb.WriteString("    __start__(( )) --> " + sanitizeID(string(table.Initial())) + "\n")
	for _, s := range table.States() {
		opener, closer := "((", "))"
		if table.IsAccepting(s) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeID(string(s)), opener, s, closer))
	}

	for _, e := range collectEdges(table) {
		label := strings.ReplaceAll(strings.Join(e.labels, "<br/>"), "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", sanitizeID(string(e.from)), label, sanitizeID(string(e.to))))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			id := sanitizeID(string(s))
			if id != "" && !seen[id] && s != overlay.CurrentState {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", id))
			}
		}
		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeID(string(overlay.CurrentState))))
		}
	}

	return sb.String()
}

func sanitizeID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
