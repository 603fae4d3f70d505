package driven

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// AnnotationStore persists document comments.
type AnnotationStore interface {
	// SaveAnnotation stores or updates an annotation.
	SaveAnnotation(ctx context.Context, a *domain.Annotation) error

	// GetAnnotation retrieves an annotation by UUID.
	GetAnnotation(ctx context.Context, uuid string) (*domain.Annotation, error)

	// DeleteAnnotation removes an annotation.
	DeleteAnnotation(ctx context.Context, uuid string) error

	// ListAnnotations returns the annotations of a document in creation order.
	ListAnnotations(ctx context.Context, documentID int64) ([]domain.Annotation, error)

	// ListCaseAnnotations returns the annotations of every document of a
	// case, in creation order.
	ListCaseAnnotations(ctx context.Context, caseID string) ([]domain.Annotation, error)
}
