package domain

import (
	"strconv"
	"time"
)

// DateFormat is the display format for receipt dates.
const DateFormat = "01/02/2006"

// Case is a claims folder: the set of documents filed for one veteran.
type Case struct {
	// ID is the case identifier (e.g. a VACOLS id).
	ID string

	// VeteranName is shown in the document list header.
	VeteranName string
}

// Document is a case record shown as one row in the list view.
// Documents are created by the import layer and are immutable from the
// list's point of view except for OpenedByCurrentUser.
type Document struct {
	// ID is the unique identifier for the document.
	ID int64

	// CaseID links to the Case this document was filed under.
	CaseID string

	// Type is the display type (e.g. "Form 9", "VA 21-526EZ").
	Type string

	// ReceivedAt is the receipt date.
	ReceivedAt time.Time

	// OpenedByCurrentUser is the read flag. It is set once, the first
	// time the document is opened, and never unset.
	OpenedByCurrentUser bool

	// Tags are the issue tags attached to the document.
	Tags []string

	// Categories holds the category flags.
	Categories CategorySet

	// ListComments reports whether the comment sub-row is shown.
	// It is derived from the list state, never persisted.
	ListComments bool
}

// Key returns the row key of the document.
func (d *Document) Key() string {
	return strconv.FormatInt(d.ID, 10)
}

// FormattedReceivedAt returns the receipt date in DateFormat.
// The zero time renders as an empty string.
func (d *Document) FormattedReceivedAt() string {
	if d.ReceivedAt.IsZero() {
		return ""
	}
	return d.ReceivedAt.Format(DateFormat)
}

// HasTag reports whether the document carries the given tag.
func (d *Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Annotation is a user-authored comment attached to a page of a document.
// It references its document by id; the document does not own it.
type Annotation struct {
	// UUID is the unique identifier.
	UUID string

	// DocumentID links to the annotated Document.
	DocumentID int64

	// Page is the 1-based page number.
	Page int

	// Comment is the free-text body.
	Comment string

	// CreatedAt orders annotations of the same document.
	CreatedAt time.Time
}

// AnnotationsByDocument groups annotations by document id, keeping the
// order in which they appear in the input.
func AnnotationsByDocument(annotations []Annotation) map[int64][]Annotation {
	result := make(map[int64][]Annotation)
	for _, a := range annotations {
		result[a.DocumentID] = append(result[a.DocumentID], a)
	}
	return result
}

// CountRead returns how many documents have been opened by the current user.
func CountRead(docs []Document) int {
	n := 0
	for i := range docs {
		if docs[i].OpenedByCurrentUser {
			n++
		}
	}
	return n
}
