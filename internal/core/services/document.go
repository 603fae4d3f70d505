package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
	"github.com/custodia-labs/reader-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the documents of a case.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// ListByCase returns all documents of a case.
func (s *DocumentService) ListByCase(ctx context.Context, caseID string) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.ListDocuments(ctx, caseID)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID int64) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// MarkRead sets the read flag of a document. The flag is never cleared, so
// opening a document a second time changes nothing.
func (s *DocumentService) MarkRead(ctx context.Context, documentID int64) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	changed, err := s.docStore.MarkRead(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("mark document %d read: %w", documentID, err)
	}
	if changed {
		logger.Debug("document %d marked read", documentID)
	}

	return s.docStore.GetDocument(ctx, documentID)
}
