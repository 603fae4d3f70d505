package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
	"github.com/custodia-labs/reader-cli/internal/logger"
)

// Ensure ReaderService implements the interface.
var _ driving.ReaderService = (*ReaderService)(nil)

// ReaderService assembles claims folders for the document list and keeps
// each case's list state between sessions.
type ReaderService struct {
	caseStore       driven.CaseStore
	docStore        driven.DocumentStore
	annotationStore driven.AnnotationStore
	viewStateStore  driven.ViewStateStore
	settings        driving.SettingsService
	now             func() time.Time
}

// NewReaderService creates a new reader service. viewStateStore and
// settings may be nil: the list then always starts from defaults and its
// state is not saved.
func NewReaderService(
	caseStore driven.CaseStore,
	docStore driven.DocumentStore,
	annotationStore driven.AnnotationStore,
	viewStateStore driven.ViewStateStore,
	settings driving.SettingsService,
) *ReaderService {
	return &ReaderService{
		caseStore:       caseStore,
		docStore:        docStore,
		annotationStore: annotationStore,
		viewStateStore:  viewStateStore,
		settings:        settings,
		now:             time.Now,
	}
}

// LoadFolder returns the case with its documents, comments and the list
// state to start from.
func (s *ReaderService) LoadFolder(ctx context.Context, caseID string) (*driving.Folder, error) {
	if s.caseStore == nil || s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defer logger.Timed("load folder " + caseID)()

	c, err := s.caseStore.GetCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("get case %s: %w", caseID, err)
	}

	docs, err := s.docStore.ListDocuments(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list documents of case %s: %w", caseID, err)
	}

	annotations, err := s.caseAnnotations(ctx, caseID)
	if err != nil {
		return nil, err
	}

	state, err := s.initialState(ctx, caseID)
	if err != nil {
		return nil, err
	}

	logger.Debug("case %s: %d documents, %d with comments", caseID, len(docs), len(annotations))
	return &driving.Folder{
		Case:        *c,
		Documents:   docs,
		Annotations: annotations,
		State:       state,
	}, nil
}

// ListRows applies the list state to the documents of a case and projects
// the table rows.
func (s *ReaderService) ListRows(ctx context.Context, caseID string, state domain.ListState) ([]domain.Row, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	docs, err := s.docStore.ListDocuments(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list documents of case %s: %w", caseID, err)
	}
	annotations, err := s.caseAnnotations(ctx, caseID)
	if err != nil {
		return nil, err
	}

	filtered := domain.ApplyCriteria(docs, annotations, state)
	return domain.ProjectRows(filtered, annotations), nil
}

// SaveViewState persists the list state of a case.
func (s *ReaderService) SaveViewState(ctx context.Context, caseID string, state domain.ListState) error {
	if s.viewStateStore == nil {
		return nil
	}

	v := domain.ViewStateFrom(caseID, state)
	v.UpdatedAt = s.now()
	if err := s.viewStateStore.SaveViewState(ctx, &v); err != nil {
		return fmt.Errorf("save view state of case %s: %w", caseID, err)
	}

	logger.Debug("case %s: saved view state (scroll %d, last read %d)", caseID, v.ScrollTop, v.LastReadDocID)
	return nil
}

func (s *ReaderService) caseAnnotations(ctx context.Context, caseID string) (map[int64][]domain.Annotation, error) {
	if s.annotationStore == nil {
		return map[int64][]domain.Annotation{}, nil
	}
	list, err := s.annotationStore.ListCaseAnnotations(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list annotations of case %s: %w", caseID, err)
	}
	return domain.AnnotationsByDocument(list), nil
}

// initialState returns the saved list state of a case, or the settings
// defaults when nothing was saved.
func (s *ReaderService) initialState(ctx context.Context, caseID string) (domain.ListState, error) {
	if s.viewStateStore != nil {
		saved, err := s.viewStateStore.GetViewState(ctx, caseID)
		switch {
		case err == nil:
			return saved.ListState(), nil
		case !errors.Is(err, domain.ErrNotFound):
			return domain.ListState{}, fmt.Errorf("get view state of case %s: %w", caseID, err)
		}
	}

	settings := domain.DefaultAppSettings()
	if s.settings != nil {
		current, err := s.settings.Get()
		if err != nil {
			logger.Warn("settings unavailable, using defaults: %v", err)
		} else {
			settings = *current
		}
	}
	return settings.InitialListState(), nil
}
