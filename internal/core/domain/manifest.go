package domain

import "fmt"

// Manifest is the content of a case import file: one case with its
// documents and their comments.
type Manifest struct {
	Case        Case
	Documents   []Document
	Annotations []Annotation
}

// Validate checks the manifest is self-consistent. Document IDs must be
// positive and unique, and every annotation must belong to a document of
// the manifest.
func (m *Manifest) Validate() error {
	if m.Case.ID == "" {
		return fmt.Errorf("%w: case id is required", ErrInvalidInput)
	}

	ids := make(map[int64]struct{}, len(m.Documents))
	for i := range m.Documents {
		doc := &m.Documents[i]
		if doc.ID <= 0 {
			return fmt.Errorf("%w: document %d: id must be positive", ErrInvalidInput, i)
		}
		if _, dup := ids[doc.ID]; dup {
			return fmt.Errorf("%w: duplicate document id %d", ErrInvalidInput, doc.ID)
		}
		ids[doc.ID] = struct{}{}
	}

	for i := range m.Annotations {
		a := &m.Annotations[i]
		if _, ok := ids[a.DocumentID]; !ok {
			return fmt.Errorf("%w: annotation %d: unknown document %d", ErrInvalidInput, i, a.DocumentID)
		}
		if a.Comment == "" {
			return fmt.Errorf("%w: annotation %d: comment is required", ErrInvalidInput, i)
		}
	}
	return nil
}
