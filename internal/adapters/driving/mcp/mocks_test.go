package mcp

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

// mockReaderService is a mock implementation of driving.ReaderService.
type mockReaderService struct {
	folder    *driving.Folder
	rows      []domain.Row
	err       error
	lastState domain.ListState
}

func (m *mockReaderService) LoadFolder(_ context.Context, _ string) (*driving.Folder, error) {
	return m.folder, m.err
}

func (m *mockReaderService) ListRows(_ context.Context, _ string, state domain.ListState) ([]domain.Row, error) {
	m.lastState = state
	return m.rows, m.err
}

func (m *mockReaderService) SaveViewState(_ context.Context, _ string, _ domain.ListState) error {
	return m.err
}

// mockCaseService is a mock implementation of driving.CaseService.
type mockCaseService struct {
	cases []domain.Case
	err   error
}

func (m *mockCaseService) List(_ context.Context) ([]domain.Case, error) {
	return m.cases, m.err
}

func (m *mockCaseService) Get(_ context.Context, id string) (*domain.Case, error) {
	for i := range m.cases {
		if m.cases[i].ID == id {
			return &m.cases[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	document *domain.Document
	err      error
}

func (m *mockDocumentService) ListByCase(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ int64) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) MarkRead(_ context.Context, _ int64) (*domain.Document, error) {
	return m.document, m.err
}

// mockAnnotationService is a mock implementation of driving.AnnotationService.
type mockAnnotationService struct {
	annotations []domain.Annotation
	err         error
}

func (m *mockAnnotationService) ListByDocument(_ context.Context, _ int64) ([]domain.Annotation, error) {
	return m.annotations, m.err
}

func (m *mockAnnotationService) ListByCase(_ context.Context, _ string) (map[int64][]domain.Annotation, error) {
	return domain.AnnotationsByDocument(m.annotations), m.err
}

func (m *mockAnnotationService) Add(_ context.Context, _ int64, _ int, _ string) (*domain.Annotation, error) {
	return nil, m.err
}

func (m *mockAnnotationService) Delete(_ context.Context, _ string) error {
	return m.err
}

func testFolder() *driving.Folder {
	return &driving.Folder{
		Case: domain.Case{ID: "3014", VeteranName: "Joe Snuffy"},
		Documents: []domain.Document{
			{ID: 1, CaseID: "3014", Type: "Form 9"},
			{ID: 2, CaseID: "3014", Type: "NOD"},
			{ID: 3, CaseID: "3014", Type: "SOC"},
		},
		State: domain.NewListState(),
	}
}
