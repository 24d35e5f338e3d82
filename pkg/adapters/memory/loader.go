package memory

import (
	"context"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Loader implements ports.TableLoader from an in-memory Definition.
type Loader struct {
	def domain.Definition
}

// NewLoader creates a loader for def. Validation happens on LoadTable.
func NewLoader(def domain.Definition) *Loader {
	return &Loader{def: def}
}

// NewFromTable creates a loader that reproduces an existing table.
func NewFromTable(table *domain.TransitionTable) *Loader {
	return &Loader{def: table.Definition()}
}

// LoadTable builds the table from the stored definition.
func (l *Loader) LoadTable(ctx context.Context) (*domain.TransitionTable, error) {
	return domain.FromDefinition(l.def)
}
