package domain

// RowKind discriminates the variants of Row.
type RowKind int

const (
	// RowDocument is the row of a document.
	RowDocument RowKind = iota
	// RowComment is the full-width comment sub-row under a document.
	RowComment
)

// String returns the string representation of the row kind.
func (k RowKind) String() string {
	switch k {
	case RowDocument:
		return "document"
	case RowComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Row is one projected table row. Kind selects the variant: a document
// row carries only Document, a comment row carries the document it belongs
// to and all of that document's annotations.
type Row struct {
	Kind        RowKind
	Document    Document
	Annotations []Annotation
}

// IsComment reports whether this is a comment sub-row.
func (r *Row) IsComment() bool {
	return r.Kind == RowComment
}

// Key returns the rendering identity of the row: the document id for a
// document row and "<id>-comment" for its comment row.
func (r *Row) Key() string {
	if r.Kind == RowComment {
		return r.Document.Key() + "-comment"
	}
	return r.Document.Key()
}

// ProjectRows turns an ordered document slice into table rows. Each
// document yields its row, immediately followed by a comment row when it
// has annotations and ListComments is set. Documents without an entry in
// annotations have no comments. The output depends only on the inputs.
func ProjectRows(docs []Document, annotations map[int64][]Annotation) []Row {
	rows := make([]Row, 0, len(docs))
	for i := range docs {
		doc := docs[i]
		rows = append(rows, Row{Kind: RowDocument, Document: doc})

		comments := annotations[doc.ID]
		if len(comments) > 0 && doc.ListComments {
			rows = append(rows, Row{
				Kind:        RowComment,
				Document:    doc,
				Annotations: comments,
			})
		}
	}
	return rows
}

// IndexOfDocument returns the index of the document row with the given
// id, or -1.
func IndexOfDocument(rows []Row, docID int64) int {
	for i := range rows {
		if rows[i].Kind == RowDocument && rows[i].Document.ID == docID {
			return i
		}
	}
	return -1
}
