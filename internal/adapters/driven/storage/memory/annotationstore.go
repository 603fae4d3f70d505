package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
// Lists are ordered by creation time, then insertion order.
type AnnotationStore struct {
	mu          sync.RWMutex
	annotations []domain.Annotation
	documents   *DocumentStore
}

// NewAnnotationStore creates a new in-memory annotation store. The document
// store resolves the case of each annotation for ListCaseAnnotations.
func NewAnnotationStore(documents *DocumentStore) *AnnotationStore {
	return &AnnotationStore{documents: documents}
}

// SaveAnnotation stores or updates an annotation.
func (s *AnnotationStore) SaveAnnotation(_ context.Context, a *domain.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.annotations {
		if s.annotations[i].UUID == a.UUID {
			s.annotations[i] = *a
			return nil
		}
	}
	s.annotations = append(s.annotations, *a)
	return nil
}

// GetAnnotation retrieves an annotation by UUID.
func (s *AnnotationStore) GetAnnotation(_ context.Context, uuid string) (*domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.annotations {
		if s.annotations[i].UUID == uuid {
			a := s.annotations[i]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteAnnotation removes an annotation.
func (s *AnnotationStore) DeleteAnnotation(_ context.Context, uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.annotations {
		if s.annotations[i].UUID == uuid {
			s.annotations = append(s.annotations[:i], s.annotations[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ListAnnotations returns the annotations of a document.
func (s *AnnotationStore) ListAnnotations(_ context.Context, documentID int64) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Annotation
	for i := range s.annotations {
		if s.annotations[i].DocumentID == documentID {
			result = append(result, s.annotations[i])
		}
	}
	sortByCreation(result)
	return result, nil
}

// ListCaseAnnotations returns the annotations of every document of a case.
func (s *AnnotationStore) ListCaseAnnotations(_ context.Context, caseID string) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Annotation
	for i := range s.annotations {
		if s.documents != nil && s.documents.caseOf(s.annotations[i].DocumentID) == caseID {
			result = append(result, s.annotations[i])
		}
	}
	sortByCreation(result)
	return result, nil
}

func sortByCreation(annotations []domain.Annotation) {
	slices.SortStableFunc(annotations, func(a, b domain.Annotation) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
