package mcp

import (
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Reader loads claims folders and projects their rows.
	Reader driving.ReaderService

	// Case lists imported cases.
	Case driving.CaseService

	// Document looks up single documents.
	Document driving.DocumentService

	// Annotation lists the comments of a document.
	Annotation driving.AnnotationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Reader == nil {
		return ErrMissingReaderService
	}
	// Case, Document and Annotation are optional
	return nil
}
