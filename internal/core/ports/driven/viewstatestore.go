package driven

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// ViewStateStore persists the document list state of each case.
type ViewStateStore interface {
	// GetViewState returns the saved state of a case.
	// Returns domain.ErrNotFound if nothing was saved.
	GetViewState(ctx context.Context, caseID string) (*domain.ViewState, error)

	// SaveViewState stores the state of a case, replacing any previous one.
	SaveViewState(ctx context.Context, state *domain.ViewState) error
}
