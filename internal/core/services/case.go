package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

// Ensure CaseService implements the interface.
var _ driving.CaseService = (*CaseService)(nil)

// CaseService lists and looks up claims folders.
type CaseService struct {
	caseStore driven.CaseStore
}

// NewCaseService creates a new case service.
func NewCaseService(caseStore driven.CaseStore) *CaseService {
	return &CaseService{caseStore: caseStore}
}

// List returns all cases.
func (s *CaseService) List(ctx context.Context) ([]domain.Case, error) {
	if s.caseStore == nil {
		return nil, domain.ErrNotImplemented
	}
	cases, err := s.caseStore.ListCases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return cases, nil
}

// Get retrieves a case by ID.
func (s *CaseService) Get(ctx context.Context, id string) (*domain.Case, error) {
	if s.caseStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, fmt.Errorf("%w: case id is required", domain.ErrInvalidInput)
	}
	return s.caseStore.GetCase(ctx, id)
}
