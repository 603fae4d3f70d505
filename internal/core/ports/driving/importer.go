package driving

import (
	"context"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// ImportService loads case manifests into storage.
type ImportService interface {
	// ImportFile reads a manifest file and stores its case, documents and
	// comments. Re-importing a file updates existing records; read flags
	// already set are kept.
	ImportFile(ctx context.Context, path string) (*ImportResult, error)

	// Watch re-imports the manifest at path whenever the file changes,
	// reporting every import. It blocks until ctx is cancelled.
	Watch(ctx context.Context, path string, report func(*ImportResult, error)) error
}

// ImportResult summarises one import.
type ImportResult struct {
	Case        domain.Case
	Documents   int
	Annotations int
}
