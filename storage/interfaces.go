package storage

import (
	"context"

	"github.com/poiesic/embedeval/core"
)

// RunRepository provides operations for persisting evaluation runs.
// Implementations must be thread-safe and support concurrent access.
type RunRepository interface {
	// SaveRun stores a run record keyed by its name, overwriting any
	// previous run with the same name. Sets CreatedAt if unset.
	SaveRun(ctx context.Context, record *core.RunRecord) error

	// GetRun retrieves a run by name.
	// Returns ErrNotFound if no run with that name exists.
	GetRun(ctx context.Context, name string) (*core.RunRecord, error)

	// ListRuns retrieves all stored runs, ordered by name.
	ListRuns(ctx context.Context) ([]*core.RunRecord, error)

	// DeleteRun removes a run by name.
	// Returns ErrNotFound if no run with that name exists.
	DeleteRun(ctx context.Context, name string) error

	// Close closes the repository and releases resources.
	Close() error
}
