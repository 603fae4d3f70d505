package driven

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// DocumentStore persists the documents of a case.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	// The read flag of an existing document is never cleared.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)

	// ListDocuments returns the documents of a case ordered by ID.
	ListDocuments(ctx context.Context, caseID string) ([]domain.Document, error)

	// MarkRead sets the read flag of a document. It reports whether the
	// flag changed.
	MarkRead(ctx context.Context, id int64) (bool, error)
}
