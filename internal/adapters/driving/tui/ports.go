// Package tui provides the interactive terminal reader for claims folders.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Case lists claims folders.
	Case driving.CaseService

	// Document looks up documents and sets read flags.
	Document driving.DocumentService

	// Annotation manages document comments.
	Annotation driving.AnnotationService

	// Reader loads folders and keeps list state.
	Reader driving.ReaderService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	cases driving.CaseService,
	documents driving.DocumentService,
	annotations driving.AnnotationService,
	reader driving.ReaderService,
) *Ports {
	return &Ports{
		Case:       cases,
		Document:   documents,
		Annotation: annotations,
		Reader:     reader,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Case == nil {
		return ErrMissingCaseService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	if p.Reader == nil {
		return ErrMissingReaderService
	}
	return nil
}
