package driving

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// AnnotationService manages document comments.
type AnnotationService interface {
	// ListByDocument returns the comments of a document in creation order.
	ListByDocument(ctx context.Context, documentID int64) ([]domain.Annotation, error)

	// ListByCase returns the comments of every document of a case keyed by
	// document ID.
	ListByCase(ctx context.Context, caseID string) (map[int64][]domain.Annotation, error)

	// Add attaches a new comment to a page of a document.
	Add(ctx context.Context, documentID int64, page int, comment string) (*domain.Annotation, error)

	// Delete removes a comment.
	Delete(ctx context.Context, uuid string) error
}
