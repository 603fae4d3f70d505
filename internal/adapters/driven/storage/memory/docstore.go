package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[int64]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[int64]domain.Document),
	}
}

// SaveDocument stores or updates a document. A read flag already set is kept.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := copyDocument(doc)
	stored.ListComments = false
	if existing, ok := s.documents[doc.ID]; ok && existing.OpenedByCurrentUser {
		stored.OpenedByCurrentUser = true
	}
	s.documents[doc.ID] = stored
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyDocument(&doc)
	return &out, nil
}

// ListDocuments returns the documents of a case ordered by ID.
func (s *DocumentStore) ListDocuments(_ context.Context, caseID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Document
	for id := range s.documents {
		doc := s.documents[id]
		if doc.CaseID == caseID {
			result = append(result, copyDocument(&doc))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MarkRead sets the read flag of a document.
func (s *DocumentStore) MarkRead(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if doc.OpenedByCurrentUser {
		return false, nil
	}
	doc.OpenedByCurrentUser = true
	s.documents[id] = doc
	return true, nil
}

// caseOf returns the case of a document, or "" if unknown.
func (s *DocumentStore) caseOf(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[id].CaseID
}

func copyDocument(doc *domain.Document) domain.Document {
	out := *doc
	out.Tags = append([]string(nil), doc.Tags...)
	return out
}
