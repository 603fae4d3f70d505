package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
)

// Ensure CaseStore implements the interface.
var _ driven.CaseStore = (*CaseStore)(nil)

// CaseStore is an in-memory implementation of driven.CaseStore.
type CaseStore struct {
	mu    sync.RWMutex
	cases map[string]domain.Case
}

// NewCaseStore creates a new in-memory case store.
func NewCaseStore() *CaseStore {
	return &CaseStore{
		cases: make(map[string]domain.Case),
	}
}

// SaveCase stores or updates a case.
func (s *CaseStore) SaveCase(_ context.Context, c *domain.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases[c.ID] = *c
	return nil
}

// GetCase retrieves a case by ID.
func (s *CaseStore) GetCase(_ context.Context, id string) (*domain.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// ListCases returns all cases ordered by ID.
func (s *CaseStore) ListCases(_ context.Context) ([]domain.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Case, 0, len(s.cases))
	for _, c := range s.cases {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
