package driving

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// ReaderService loads a claims folder for the document list and keeps
// its list state across sessions.
type ReaderService interface {
	// LoadFolder returns the case, all of its documents and comments, and
	// the list state to start from (saved state, or defaults from settings).
	LoadFolder(ctx context.Context, caseID string) (*Folder, error)

	// ListRows applies the list state to the documents of a case and
	// returns the projected table rows.
	ListRows(ctx context.Context, caseID string, state domain.ListState) ([]domain.Row, error)

	// SaveViewState persists the list state of a case.
	SaveViewState(ctx context.Context, caseID string, state domain.ListState) error
}

// Folder is a loaded claims folder.
type Folder struct {
	// Case is the folder's case.
	Case domain.Case

	// Documents are all documents of the case, unfiltered and unsorted.
	Documents []domain.Document

	// Annotations maps document IDs to their comments.
	Annotations map[int64][]domain.Annotation

	// State is the list state to start from.
	State domain.ListState
}

// ReadCount returns how many documents of the folder have been opened.
func (f *Folder) ReadCount() int {
	return domain.CountRead(f.Documents)
}
