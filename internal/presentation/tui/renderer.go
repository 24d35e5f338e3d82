package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", err
		}
		return r.Render(markdown)
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Markdown renders the trace of res as a markdown table followed by the verdict.
func Markdown(res *domain.Result) string {
	var sb strings.Builder
	title := res.Table
	if title == "" {
		title = "run"
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Initial: `%s` %s\n\n", res.Initial.State, mdEscape(domain.FormatStack(res.Initial.Stack))))

	if len(res.Trace) > 0 {
		sb.WriteString("| Step | Input | Action | State | Stack |\n")
		sb.WriteString("|---:|---|---|---|---|\n")
		for _, e := range res.Trace {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
				e.Index, e.Input(), mdEscape(e.Describe()), e.To, mdEscape(domain.FormatStack(e.StackAfter))))
		}
		sb.WriteString("\n")
	}

	if res.Verdict.Accepted() {
		sb.WriteString(fmt.Sprintf("**ACCEPTED** in `%s`\n", res.Verdict.State))
	} else {
		sb.WriteString(fmt.Sprintf("**REJECTED**: %s\n", res.Verdict.Message()))
	}
	return sb.String()
}

// Plain writes the trace of res as aligned columns without any styling.
func Plain(w io.Writer, res *domain.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "STEP\tINPUT\tACTION\tSTATE\tSTACK\n")
	fmt.Fprintf(tw, "0\t%s\t%s\t%s\t%s\n", domain.NotConsumed, "start", res.Initial.State, domain.FormatStack(res.Initial.Stack))
	for _, e := range res.Trace {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.Index, e.Input(), e.Describe(), e.To, domain.FormatStack(e.StackAfter))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", VerdictLine(res.Verdict))
	return err
}

// RenderResult writes res to w, through glamour when w is a terminal.
func RenderResult(w io.Writer, res *domain.Result) error {
	if !IsTerminal(w) {
		return Plain(w, res)
	}
	out, err := NewRenderer()(Markdown(res))
	if err != nil {
		return Plain(w, res)
	}
	_, err = io.WriteString(w, out)
	return err
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
