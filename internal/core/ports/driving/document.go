package driving

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// DocumentService manages the documents of a case.
type DocumentService interface {
	// ListByCase returns all documents of a case, unfiltered.
	ListByCase(ctx context.Context, caseID string) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID int64) (*domain.Document, error)

	// MarkRead sets the read flag of a document and returns the updated
	// document. Marking an already read document is a no-op.
	MarkRead(ctx context.Context, documentID int64) (*domain.Document, error)
}
