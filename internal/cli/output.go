package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/pushdown/internal/presentation/tui"
	"github.com/aretw0/pushdown/pkg/domain"
)

// Output formats for --format.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// WriteResult renders res to w in the given format.
func WriteResult(w io.Writer, res *domain.Result, format string) error {
	switch format {
	case "", FormatText:
		return tui.RenderResult(w, res)
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatMarkdown:
		_, err := io.WriteString(w, tui.Markdown(res))
		return err
	default:
		return fmt.Errorf("unknown output format %q (want text, json or markdown)", format)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
