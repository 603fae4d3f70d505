package driving

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// CaseService lists and looks up claims folders.
type CaseService interface {
	// List returns all cases.
	List(ctx context.Context) ([]domain.Case, error)

	// Get retrieves a case by ID.
	Get(ctx context.Context, id string) (*domain.Case, error)
}
