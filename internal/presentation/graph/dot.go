package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// DOT produces a Graphviz digraph of the table, left to right, with accepting
// states drawn as double circles and an invisible point leading to the initial state.
func DOT(table *domain.TransitionTable, overlay *Overlay) string {
	var sb strings.Builder
	name := table.Name()
	if name == "" {
		name = "PDA"
	}

	sb.WriteString(fmt.Sprintf("digraph %s {\n", quoteDOT(name)))
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=circle];\n")
	sb.WriteString("    \"\" [shape=none, width=0, height=0];\n")

	highlight := map[domain.State]string{}
	if overlay != nil {
		for _, s := range overlay.VisitedStates {
			highlight[s] = "#e1f5fe"
		}
		if overlay.CurrentState != "" {
			highlight[overlay.CurrentState] = "#ffeb3b"
		}
	}

	for _, s := range table.States() {
		var attrs []string
		if table.IsAccepting(s) {
			attrs = append(attrs, "shape=doublecircle")
		}
		if fill, ok := highlight[s]; ok {
			attrs = append(attrs, "style=filled", fmt.Sprintf("fillcolor=%q", fill))
		}
		if len(attrs) > 0 {
			sb.WriteString(fmt.Sprintf("    %s [%s];\n", quoteDOT(string(s)), strings.Join(attrs, ", ")))
		}
	}

	sb.WriteString(fmt.Sprintf("    \"\" -> %s;\n", quoteDOT(string(table.Initial()))))
	for _, e := range collectEdges(table) {
		sb.WriteString(fmt.Sprintf("    %s -> %s [label=%s];\n",
			quoteDOT(string(e.from)), quoteDOT(string(e.to)), quoteDOT(strings.Join(e.labels, "\n"))))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func quoteDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
