package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
	"github.com/custodia-labs/reader-cli/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService stores the content of case manifests.
type ImportService struct {
	loader          driven.ManifestLoader
	caseStore       driven.CaseStore
	docStore        driven.DocumentStore
	annotationStore driven.AnnotationStore
	watcher         driven.FileWatcher
}

// NewImportService creates a new import service.
func NewImportService(
	loader driven.ManifestLoader,
	caseStore driven.CaseStore,
	docStore driven.DocumentStore,
	annotationStore driven.AnnotationStore,
) *ImportService {
	return &ImportService{
		loader:          loader,
		caseStore:       caseStore,
		docStore:        docStore,
		annotationStore: annotationStore,
	}
}

// WithWatcher enables Watch.
func (s *ImportService) WithWatcher(w driven.FileWatcher) *ImportService {
	s.watcher = w
	return s
}

// Watch re-imports the manifest at path every time it changes and passes
// each outcome to report. It blocks until ctx is cancelled or the watcher
// stops.
func (s *ImportService) Watch(ctx context.Context, path string, report func(*driving.ImportResult, error)) error {
	if s.watcher == nil {
		return domain.ErrNotImplemented
	}

	changes, err := s.watcher.Watch(ctx, path)
	if err != nil {
		return fmt.Errorf("watch manifest: %w", err)
	}

	for change := range changes {
		logger.Debug("manifest %s changed at %s", change.Path, change.At.Format(time.RFC3339))
		report(s.ImportFile(ctx, change.Path))
	}
	return ctx.Err()
}

// ImportFile loads the manifest at path and stores its content.
func (s *ImportService) ImportFile(ctx context.Context, path string) (*driving.ImportResult, error) {
	if s.loader == nil || s.caseStore == nil || s.docStore == nil || s.annotationStore == nil {
		return nil, domain.ErrNotImplemented
	}

	logger.Section("Import")
	defer logger.Timed("import " + path)()

	m, err := s.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	return s.importManifest(ctx, m)
}

func (s *ImportService) importManifest(ctx context.Context, m *domain.Manifest) (*driving.ImportResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.caseStore.SaveCase(ctx, &m.Case); err != nil {
		return nil, fmt.Errorf("save case %s: %w", m.Case.ID, err)
	}

	for i := range m.Documents {
		doc := m.Documents[i]
		doc.CaseID = m.Case.ID
		if err := s.docStore.SaveDocument(ctx, &doc); err != nil {
			return nil, fmt.Errorf("save document %d: %w", doc.ID, err)
		}
	}

	for i := range m.Annotations {
		if err := s.annotationStore.SaveAnnotation(ctx, &m.Annotations[i]); err != nil {
			return nil, fmt.Errorf("save annotation %s: %w", m.Annotations[i].UUID, err)
		}
	}

	logger.Info("imported case %s: %d documents, %d annotations",
		m.Case.ID, len(m.Documents), len(m.Annotations))

	return &driving.ImportResult{
		Case:        m.Case,
		Documents:   len(m.Documents),
		Annotations: len(m.Annotations),
	}, nil
}
