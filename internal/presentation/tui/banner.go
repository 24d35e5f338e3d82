package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner for long-running commands.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	s1 := termenv.String("  ┌─┐ ┬ ┬ ┌─┐ ┬ ┬ ┌┬┐ ┌─┐ ┬ ┬ ┌┐┌").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  ├─┘ │ │ └─┐ ├─┤  ││ │ │ │││ │││").Foreground(p.Color("#c084fc"))
	s3 := termenv.String("  ┴   └─┘ └─┘ ┴ ┴ ─┴┘ └─┘ └┴┘ ┘└┘").Foreground(p.Color("#f472b6"))
	v := termenv.String("  v" + version).Faint()

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, v)
	fmt.Fprintln(w)
}

// VerdictLine formats v as a single line, green when accepted and red otherwise.
// Colors are dropped when the output does not support them.
func VerdictLine(v domain.Verdict) string {
	p := termenv.ColorProfile()
	if v.Accepted() {
		return termenv.String("ACCEPTED").Foreground(p.Color("#22c55e")).Bold().String() +
			fmt.Sprintf(" in %s", v.State)
	}
	return termenv.String("REJECTED").Foreground(p.Color("#ef4444")).Bold().String() +
		": " + v.Message()
}
