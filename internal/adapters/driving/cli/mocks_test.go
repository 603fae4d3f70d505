package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

// fixture holds the case the mock services serve.
type fixture struct {
	cases       []domain.Case
	documents   []domain.Document
	annotations []domain.Annotation
	settings    domain.AppSettings
}

func newFixture() *fixture {
	return &fixture{
		cases: []domain.Case{{ID: "3014", VeteranName: "Joe Snuffy"}},
		documents: []domain.Document{
			{
				ID: 1, CaseID: "3014", Type: "Form 9",
				ReceivedAt:          time.Date(2017, 5, 3, 0, 0, 0, 0, time.UTC),
				OpenedByCurrentUser: true,
				Tags:                []string{"Service Connection"},
				Categories:          domain.CategorySet{Procedural: true},
			},
			{
				ID: 2, CaseID: "3014", Type: "NOD",
				ReceivedAt: time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC),
				Tags:       []string{"Increased Rating"},
				Categories: domain.CategorySet{Medical: true},
			},
			{
				ID: 3, CaseID: "3014", Type: "VA 21-526EZ",
				ReceivedAt: time.Date(2017, 4, 1, 0, 0, 0, 0, time.UTC),
				Categories: domain.CategorySet{Other: true},
			},
		},
		annotations: []domain.Annotation{
			{UUID: "a-1", DocumentID: 1, Page: 3, Comment: "Knee x-ray shows effusion"},
		},
		settings: domain.DefaultAppSettings(),
	}
}

func (f *fixture) document(id int64) (*domain.Document, error) {
	for i := range f.documents {
		if f.documents[i].ID == id {
			doc := f.documents[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockCaseService implements driving.CaseService for CLI tests.
type MockCaseService struct{ f *fixture }

func (m *MockCaseService) List(_ context.Context) ([]domain.Case, error) {
	return m.f.cases, nil
}

func (m *MockCaseService) Get(_ context.Context, id string) (*domain.Case, error) {
	for i := range m.f.cases {
		if m.f.cases[i].ID == id {
			return &m.f.cases[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockDocumentService implements driving.DocumentService for CLI tests.
type MockDocumentService struct{ f *fixture }

func (m *MockDocumentService) ListByCase(_ context.Context, caseID string) ([]domain.Document, error) {
	var out []domain.Document
	for _, d := range m.f.documents {
		if d.CaseID == caseID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockDocumentService) Get(_ context.Context, id int64) (*domain.Document, error) {
	return m.f.document(id)
}

func (m *MockDocumentService) MarkRead(_ context.Context, id int64) (*domain.Document, error) {
	for i := range m.f.documents {
		if m.f.documents[i].ID == id {
			m.f.documents[i].OpenedByCurrentUser = true
			doc := m.f.documents[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockAnnotationService implements driving.AnnotationService for CLI tests.
type MockAnnotationService struct{ f *fixture }

func (m *MockAnnotationService) ListByDocument(_ context.Context, id int64) ([]domain.Annotation, error) {
	return domain.AnnotationsByDocument(m.f.annotations)[id], nil
}

func (m *MockAnnotationService) ListByCase(_ context.Context, _ string) (map[int64][]domain.Annotation, error) {
	return domain.AnnotationsByDocument(m.f.annotations), nil
}

func (m *MockAnnotationService) Add(_ context.Context, id int64, page int, comment string) (*domain.Annotation, error) {
	if _, err := m.f.document(id); err != nil {
		return nil, err
	}
	a := domain.Annotation{UUID: "a-new", DocumentID: id, Page: page, Comment: comment}
	m.f.annotations = append(m.f.annotations, a)
	return &a, nil
}

func (m *MockAnnotationService) Delete(_ context.Context, uuid string) error {
	for i, a := range m.f.annotations {
		if a.UUID == uuid {
			m.f.annotations = append(m.f.annotations[:i], m.f.annotations[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockReaderService implements driving.ReaderService for CLI tests with
// the real list pipeline.
type MockReaderService struct{ f *fixture }

func (m *MockReaderService) LoadFolder(ctx context.Context, caseID string) (*driving.Folder, error) {
	c, err := (&MockCaseService{m.f}).Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	docs, _ := (&MockDocumentService{m.f}).ListByCase(ctx, caseID)
	return &driving.Folder{
		Case:        *c,
		Documents:   docs,
		Annotations: domain.AnnotationsByDocument(m.f.annotations),
		State:       m.f.settings.InitialListState(),
	}, nil
}

func (m *MockReaderService) ListRows(ctx context.Context, caseID string, state domain.ListState) ([]domain.Row, error) {
	docs, _ := (&MockDocumentService{m.f}).ListByCase(ctx, caseID)
	annotations := domain.AnnotationsByDocument(m.f.annotations)
	return domain.ProjectRows(domain.ApplyCriteria(docs, annotations, state), annotations), nil
}

func (m *MockReaderService) SaveViewState(_ context.Context, _ string, _ domain.ListState) error {
	return nil
}

// MockImportService implements driving.ImportService for CLI tests.
type MockImportService struct {
	f       *fixture
	err     error
	watched []string
}

func (m *MockImportService) ImportFile(_ context.Context, _ string) (*driving.ImportResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driving.ImportResult{
		Case:        m.f.cases[0],
		Documents:   len(m.f.documents),
		Annotations: len(m.f.annotations),
	}, nil
}

func (m *MockImportService) Watch(ctx context.Context, path string, report func(*driving.ImportResult, error)) error {
	m.watched = append(m.watched, path)
	report(m.ImportFile(ctx, path))
	report(nil, domain.ErrInvalidInput)
	return context.Canceled
}

// MockSettingsService implements driving.SettingsService for CLI tests.
type MockSettingsService struct{ f *fixture }

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.f.settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.f.settings = *settings
	return nil
}

func (m *MockSettingsService) Set(key, value string) error {
	switch key {
	case domain.SettingDefaultSort:
		field, err := domain.ParseSortField(value)
		if err != nil {
			return err
		}
		m.f.settings.List.DefaultSort.SortBy = field
	case domain.SettingDataDir:
		m.f.settings.Storage.DataDir = value
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func (m *MockSettingsService) Keys() []string {
	return []string{domain.SettingDefaultSort, domain.SettingDataDir}
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// resetFlags restores package flag variables, which cobra keeps between
// executions of the same command tree.
func resetFlags() {
	listOpts = documentListOptions{sort: string(domain.SortByReceivedAt)}
	commentPage = 1
	importWatch = false
	verbose = false
	dataDir = ""
}

// setupTestServices installs mock services over a fresh fixture and
// returns the fixture with a cleanup function.
func setupTestServices() (*fixture, func()) {
	f := newFixture()
	importer := &MockImportService{f: f}

	origCase, origDoc, origAnn := caseService, documentService, annotationService
	origReader, origImport, origSettings := readerService, importService, settingsService
	origInit := initializer

	resetFlags()
	SetServices(Services{
		Case:       &MockCaseService{f},
		Document:   &MockDocumentService{f},
		Annotation: &MockAnnotationService{f},
		Reader:     &MockReaderService{f},
		Import:     importer,
		Settings:   &MockSettingsService{f},
	})
	initializer = nil

	return f, func() {
		caseService, documentService, annotationService = origCase, origDoc, origAnn
		readerService, importService, settingsService = origReader, origImport, origSettings
		initializer = origInit
		resetFlags()
	}
}
