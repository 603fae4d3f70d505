package driven

import "github.com/custodia-labs/reader-cli/internal/core/domain"

// ManifestLoader reads case import manifests.
type ManifestLoader interface {
	// Load parses the manifest at path.
	Load(path string) (*domain.Manifest, error)
}
