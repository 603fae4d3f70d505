package file

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driven"
)

// Ensure ManifestLoader implements the interface.
var _ driven.ManifestLoader = (*ManifestLoader)(nil)

// annotationNamespace seeds the UUIDs derived for annotations that have none,
// so re-importing the same file yields the same IDs.
var annotationNamespace = uuid.MustParse("4f0d6f5e-6b38-4c8e-9d7c-5a8f3f0b2a11")

// receivedLayouts are the accepted receipt date formats.
var receivedLayouts = []string{"2006-01-02", domain.DateFormat, time.RFC3339}

// manifestFile is the on-disk layout of a case import file.
type manifestFile struct {
	Case        caseEntry         `toml:"case" json:"case"`
	Documents   []documentEntry   `toml:"documents" json:"documents"`
	Annotations []annotationEntry `toml:"annotations" json:"annotations"`
}

type caseEntry struct {
	ID          string `toml:"id" json:"id"`
	VeteranName string `toml:"veteran_name" json:"veteran_name"`
}

type documentEntry struct {
	ID         int64    `toml:"id" json:"id"`
	Type       string   `toml:"type" json:"type"`
	ReceivedAt string   `toml:"received_at" json:"received_at"`
	Read       bool     `toml:"read" json:"read"`
	Tags       []string `toml:"tags" json:"tags"`
	Categories []string `toml:"categories" json:"categories"`
}

type annotationEntry struct {
	UUID       string `toml:"uuid" json:"uuid"`
	DocumentID int64  `toml:"document_id" json:"document_id"`
	Page       int    `toml:"page" json:"page"`
	Comment    string `toml:"comment" json:"comment"`
	CreatedAt  string `toml:"created_at" json:"created_at"`
}

// ManifestLoader reads case manifests written in TOML (.toml) or JSON (.json).
type ManifestLoader struct{}

// NewManifestLoader creates a manifest loader.
func NewManifestLoader() *ManifestLoader {
	return &ManifestLoader{}
}

// Load parses the manifest at path. Unknown fields are rejected.
func (l *ManifestLoader) Load(path string) (*domain.Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var mf manifestFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(f, &mf)
	case ".json":
		err = decodeJSON(f, &mf)
	default:
		return nil, fmt.Errorf("%w: unsupported manifest format %q", domain.ErrInvalidInput, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidInput, filepath.Base(path), err)
	}

	return mf.toDomain()
}

func decodeTOML(r io.Reader, mf *manifestFile) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(mf)
}

func decodeJSON(r io.Reader, mf *manifestFile) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(mf)
}

func (mf *manifestFile) toDomain() (*domain.Manifest, error) {
	m := &domain.Manifest{
		Case: domain.Case{ID: mf.Case.ID, VeteranName: mf.Case.VeteranName},
	}

	for i, d := range mf.Documents {
		doc := domain.Document{
			ID:                  d.ID,
			CaseID:              mf.Case.ID,
			Type:                d.Type,
			OpenedByCurrentUser: d.Read,
			Tags:                d.Tags,
		}
		if d.ReceivedAt != "" {
			t, err := parseTime(d.ReceivedAt, receivedLayouts)
			if err != nil {
				return nil, fmt.Errorf("%w: document %d: received_at: %v", domain.ErrInvalidInput, i, err)
			}
			doc.ReceivedAt = t
		}
		for _, name := range d.Categories {
			cat, err := domain.ParseCategory(name)
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
			doc.Categories = doc.Categories.With(cat, true)
		}
		m.Documents = append(m.Documents, doc)
	}

	for i, a := range mf.Annotations {
		annotation := domain.Annotation{
			UUID:       a.UUID,
			DocumentID: a.DocumentID,
			Page:       a.Page,
			Comment:    a.Comment,
		}
		if annotation.Page == 0 {
			annotation.Page = 1
		}
		if annotation.UUID == "" {
			name := fmt.Sprintf("%s/%d/%d/%s", mf.Case.ID, a.DocumentID, i, a.Comment)
			annotation.UUID = uuid.NewSHA1(annotationNamespace, []byte(name)).String()
		}
		if a.CreatedAt != "" {
			t, err := parseTime(a.CreatedAt, []string{time.RFC3339, "2006-01-02"})
			if err != nil {
				return nil, fmt.Errorf("%w: annotation %d: created_at: %v", domain.ErrInvalidInput, i, err)
			}
			annotation.CreatedAt = t
		}
		m.Annotations = append(m.Annotations, annotation)
	}

	return m, nil
}

func parseTime(s string, layouts []string) (time.Time, error) {
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
