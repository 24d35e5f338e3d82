package file

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Loader implements ports.TableLoader for a YAML or JSON table file.
type Loader struct {
	Path string
}

// NewLoader creates a loader for the file at path.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// LoadTable reads, decodes and validates the table file.
func (l *Loader) LoadTable(ctx context.Context) (*domain.TransitionTable, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", l.Path, err)
	}
	defer f.Close()

	def, err := DecodeDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	table, err := domain.FromDefinition(def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	return table, nil
}
