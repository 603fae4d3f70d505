package driven

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// CaseStore persists claims folders.
type CaseStore interface {
	// SaveCase stores or updates a case.
	SaveCase(ctx context.Context, c *domain.Case) error

	// GetCase retrieves a case by ID.
	// Returns domain.ErrNotFound if the case does not exist.
	GetCase(ctx context.Context, id string) (*domain.Case, error)

	// ListCases returns all cases ordered by ID.
	ListCases(ctx context.Context) ([]domain.Case, error)
}
