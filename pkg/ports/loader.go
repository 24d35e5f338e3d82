package ports

import (
	"context"

	"github.com/aretw0/pushdown/pkg/domain"
)

// TableLoader defines how the engine obtains its transition table.
// Configuration errors must be reported here (wrapping domain.ErrConfiguration),
// never discovered mid-run.
type TableLoader interface {
	LoadTable(ctx context.Context) (*domain.TransitionTable, error)
}
