package ports

import (
	"context"

	"github.com/aretw0/pushdown/pkg/domain"
)

// RunStore defines the interface for keeping completed runs.
type RunStore interface {
	// Save persists the record under record.ID.
	Save(ctx context.Context, record *domain.RunRecord) error

	// Load retrieves a record.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (*domain.RunRecord, error)

	// Delete removes a record. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored runs, most recent first.
	List(ctx context.Context) ([]string, error)
}
