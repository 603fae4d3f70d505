package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
)

// Ensure ViewStateStore implements the interface.
var _ driven.ViewStateStore = (*ViewStateStore)(nil)

// ViewStateStore is an in-memory implementation of driven.ViewStateStore.
type ViewStateStore struct {
	mu     sync.RWMutex
	states map[string]domain.ViewState
}

// NewViewStateStore creates a new in-memory view state store.
func NewViewStateStore() *ViewStateStore {
	return &ViewStateStore{
		states: make(map[string]domain.ViewState),
	}
}

// GetViewState returns the saved state of a case.
func (s *ViewStateStore) GetViewState(_ context.Context, caseID string) (*domain.ViewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[caseID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	state.Criteria = state.Criteria.Clone()
	return &state, nil
}

// SaveViewState stores the state of a case.
func (s *ViewStateStore) SaveViewState(_ context.Context, state *domain.ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *state
	stored.Criteria = state.Criteria.Clone()
	s.states[state.CaseID] = stored
	return nil
}
