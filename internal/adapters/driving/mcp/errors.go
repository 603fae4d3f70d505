// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// reader. It lets AI assistants list and read the documents of imported
// claims folders.
package mcp

import "errors"

// ErrMissingReaderService is returned when the reader service is not provided.
var ErrMissingReaderService = errors.New("mcp: reader service is required")

// ErrDocumentsUnavailable is returned by get_document when no document
// service is configured.
var ErrDocumentsUnavailable = errors.New("mcp: document service not available")
