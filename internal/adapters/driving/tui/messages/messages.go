// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCases lists the claims folders.
	ViewCases
	// ViewDocuments is the document list of one case.
	ViewDocuments
	// ViewDocument shows one document with its comments.
	ViewDocument
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCases:
		return "cases"
	case ViewDocuments:
		return "documents"
	case ViewDocument:
		return "document"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CasesLoaded carries the list of cases.
type CasesLoaded struct {
	Cases []domain.Case
	Err   error
}

// CaseSelected signals a case was picked and its folder should open.
type CaseSelected struct {
	CaseID string
}

// FolderLoaded carries a claims folder with its starting list state.
type FolderLoaded struct {
	Folder *driving.Folder
	Err    error
}

// RowsLoaded carries the projected rows for a list state.
type RowsLoaded struct {
	CaseID string
	Rows   []domain.Row
	Err    error
}

// DocumentSelected signals a document row was opened from the list.
// AnnotationUUID is set when a comment row was opened.
type DocumentSelected struct {
	Document       domain.Document
	AnnotationUUID string
}

// DocumentMarkedRead carries a document after its read flag was set.
type DocumentMarkedRead struct {
	Document *domain.Document
	Err      error
}

// AnnotationsLoaded carries the comments of one document.
type AnnotationsLoaded struct {
	DocumentID  int64
	Annotations []domain.Annotation
	Err         error
}

// AnnotationAdded signals a comment was created.
type AnnotationAdded struct {
	Annotation *domain.Annotation
	Err        error
}

// AnnotationDeleted signals a comment was removed.
type AnnotationDeleted struct {
	UUID string
	Err  error
}

// DocumentClosed signals the document view was left. The list reloads
// so the read flag and comment changes show up.
type DocumentClosed struct {
	DocumentID int64
}

// ViewStateSaved signals the list state of a case was persisted.
type ViewStateSaved struct {
	CaseID string
	Err    error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
