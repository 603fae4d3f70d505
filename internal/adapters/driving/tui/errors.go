package tui

import "errors"

// ErrMissingCaseService is returned when the case service is not provided.
var ErrMissingCaseService = errors.New("tui: case service is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("tui: annotation service is required")

// ErrMissingReaderService is returned when the reader service is not provided.
var ErrMissingReaderService = errors.New("tui: reader service is required")
