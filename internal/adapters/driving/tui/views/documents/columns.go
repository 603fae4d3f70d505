package documents

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/components/table"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// Sort indicators shown in sortable column headers.
const (
	SortAscending  = "▲"
	SortDescending = "▼"
	SortInactive   = "⇅"
)

// Cell classes of the document table.
const (
	ClassLastRead     = "last-read-indicator"
	ClassCategories   = "categories-column"
	ClassReceiptDate  = "receipt-date-column"
	ClassDocumentType = "document-type-column"
	ClassTags         = "tags-column"
	ClassComments     = "comments-column"
	ClassCommentRow   = "comment-row"
)

// Fixed column widths. The document type column takes the rest.
const (
	widthLastRead    = 2
	widthCategories  = 13
	widthReceiptDate = 15
	widthTags        = 22
	widthComments    = 10
	minTypeWidth     = 16

	// columnCount is the number of columns a comment row spans.
	columnCount = 6
)

// filterIcon marks a header with a filter control.
const filterIcon = "▾"

// ColumnBuilder produces the column descriptors of the document table
// from the current list state.
type ColumnBuilder struct {
	// State supplies the sort, the filters, the open dropdowns and the
	// last read document.
	State domain.ListState

	// Annotations is used for the comment counts.
	Annotations map[int64][]domain.Annotation

	// TableWidth is the width available to the table.
	TableWidth int

	// Highlight marks search matches in the receipt date and type cells.
	// Nil leaves them plain.
	Highlight func(string) string
}

// Columns returns the descriptors of a row; nil asks for the header.
// Document rows get six columns. A comment row gets a single column that
// spans all six and renders the row's comments.
func (b *ColumnBuilder) Columns(row *domain.Row) []table.Column {
	if row != nil && row.IsComment() {
		return []table.Column{b.commentRowColumn()}
	}

	return []table.Column{
		{
			Header:    "",
			CellClass: ClassLastRead,
			Width:     widthLastRead,
			Value: func(r *domain.Row) string {
				if r.Document.ID == b.State.LastReadDocID && b.State.LastReadDocID != 0 {
					return "▶"
				}
				return ""
			},
		},
		{
			Header:    "Categories " + filterIcon,
			CellClass: ClassCategories,
			Width:     widthCategories,
			Filter:    b.filter(domain.FilterCategory),
			Value: func(r *domain.Row) string {
				cats := r.Document.Categories.List()
				symbols := make([]string, 0, len(cats))
				for _, c := range cats {
					symbols = append(symbols, c.Symbol())
				}
				return strings.Join(symbols, " ")
			},
		},
		{
			Header:    "Receipt Date " + SortIndicator(b.State.Criteria, domain.SortByReceivedAt),
			CellClass: ClassReceiptDate,
			Width:     widthReceiptDate,
			SortField: domain.SortByReceivedAt,
			Value: func(r *domain.Row) string {
				return HighlightMatches(r.Document.FormattedReceivedAt(), b.State.Criteria.SearchQuery, b.Highlight)
			},
		},
		{
			Header:    "Document Type " + SortIndicator(b.State.Criteria, domain.SortByType),
			CellClass: ClassDocumentType,
			Width:     b.typeWidth(),
			SortField: domain.SortByType,
			Value: func(r *domain.Row) string {
				return HighlightMatches(r.Document.Type, b.State.Criteria.SearchQuery, b.Highlight)
			},
		},
		{
			Header:    "Issue Tags " + filterIcon,
			CellClass: ClassTags,
			Width:     widthTags,
			Filter:    b.filter(domain.FilterTag),
			Value: func(r *domain.Row) string {
				return strings.Join(r.Document.Tags, ", ")
			},
		},
		{
			Header:    "Comments",
			CellClass: ClassComments,
			Width:     widthComments,
			Value: func(r *domain.Row) string {
				n := len(b.Annotations[r.Document.ID])
				if n == 0 {
					return ""
				}
				marker := "▸"
				if r.Document.ListComments {
					marker = "▾"
				}
				return fmt.Sprintf("%s %d", marker, n)
			},
		},
	}
}

func (b *ColumnBuilder) commentRowColumn() table.Column {
	return table.Column{
		CellClass: ClassCommentRow,
		Span:      func(*domain.Row) int { return columnCount },
		Value: func(r *domain.Row) string {
			return RenderComments(r.Annotations)
		},
	}
}

// filter describes the filter control of a header. It is selected when
// its dropdown is open or any filter of its type is set.
func (b *ColumnBuilder) filter(t domain.FilterType) *table.Filter {
	return &table.Filter{
		Type:     t,
		Selected: b.State.IsDropdownOpen(t) || b.State.Criteria.AnySet(t),
	}
}

func (b *ColumnBuilder) typeWidth() int {
	fixed := widthLastRead + widthCategories + widthReceiptDate + widthTags + widthComments
	w := b.TableWidth - fixed - (columnCount - 1)
	if w < minTypeWidth {
		return minTypeWidth
	}
	return w
}

// SortIndicator returns the header indicator of a sortable field: the
// direction of the active sort, or the inactive marker.
func SortIndicator(c domain.FilterCriteria, field domain.SortField) string {
	if c.Sort.SortBy != field {
		return SortInactive
	}
	if c.Sort.SortAscending {
		return SortAscending
	}
	return SortDescending
}

// HighlightMatches wraps every case-insensitive occurrence of query in
// text with mark. Text whose lower case form changes byte length is
// returned as is.
func HighlightMatches(text, query string, mark func(string) string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || mark == nil {
		return text
	}
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		return text
	}

	var b strings.Builder
	for {
		i := strings.Index(lower, q)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		b.WriteString(mark(text[i : i+len(q)]))
		text, lower = text[i+len(q):], lower[i+len(q):]
	}
}

// RenderComments renders the comment sub-list of a comment row, one line
// per comment.
func RenderComments(annotations []domain.Annotation) string {
	lines := make([]string, 0, len(annotations))
	for _, a := range annotations {
		lines = append(lines, fmt.Sprintf("   ↳ Page %d: %s", a.Page, oneLine(a.Comment)))
	}
	return strings.Join(lines, "\n")
}

// oneLine collapses line breaks so a comment keeps to one table line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
