package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
	"github.com/custodia-labs/reader-cli/internal/logger"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService manages document comments.
type AnnotationService struct {
	annotationStore driven.AnnotationStore
	docStore        driven.DocumentStore
	now             func() time.Time
}

// NewAnnotationService creates a new annotation service.
func NewAnnotationService(annotationStore driven.AnnotationStore, docStore driven.DocumentStore) *AnnotationService {
	return &AnnotationService{
		annotationStore: annotationStore,
		docStore:        docStore,
		now:             time.Now,
	}
}

// ListByDocument returns the comments of a document.
func (s *AnnotationService) ListByDocument(ctx context.Context, documentID int64) ([]domain.Annotation, error) {
	if s.annotationStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.annotationStore.ListAnnotations(ctx, documentID)
}

// ListByCase returns the comments of a case grouped by document.
func (s *AnnotationService) ListByCase(ctx context.Context, caseID string) (map[int64][]domain.Annotation, error) {
	if s.annotationStore == nil {
		return nil, domain.ErrNotImplemented
	}
	annotations, err := s.annotationStore.ListCaseAnnotations(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list annotations of case %s: %w", caseID, err)
	}
	return domain.AnnotationsByDocument(annotations), nil
}

// Add attaches a new comment to a page of a document.
func (s *AnnotationService) Add(ctx context.Context, documentID int64, page int, comment string) (*domain.Annotation, error) {
	if s.annotationStore == nil || s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", domain.ErrInvalidInput)
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1", domain.ErrInvalidInput)
	}
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return nil, fmt.Errorf("document %d: %w", documentID, err)
	}

	a := &domain.Annotation{
		UUID:       uuid.New().String(),
		DocumentID: documentID,
		Page:       page,
		Comment:    comment,
		CreatedAt:  s.now(),
	}
	if err := s.annotationStore.SaveAnnotation(ctx, a); err != nil {
		return nil, fmt.Errorf("save annotation: %w", err)
	}

	logger.Debug("annotation %s added to document %d page %d", a.UUID, documentID, page)
	return a, nil
}

// Delete removes a comment.
func (s *AnnotationService) Delete(ctx context.Context, id string) error {
	if s.annotationStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.annotationStore.DeleteAnnotation(ctx, id); err != nil {
		return fmt.Errorf("delete annotation %s: %w", id, err)
	}
	logger.Debug("annotation %s deleted", id)
	return nil
}
