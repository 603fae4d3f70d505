package cli

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"golang.org/x/term"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// isTerminal reports whether w writes to an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newTable returns a table sized for w. On a terminal long cells wrap at a
// share of the screen width; otherwise cells are written in full so output
// stays greppable.
func newTable(w io.Writer) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	if f, ok := w.(*os.File); ok && isTerminal(w) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			tbl.MaxColWidth = uint(width / 3)
			tbl.Wrap = true
		}
	}
	return tbl
}

// styler returns a printer that only emits colour on a terminal.
func styler(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if isTerminal(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func categorySymbols(set domain.CategorySet) string {
	var b strings.Builder
	for _, c := range set.List() {
		b.WriteString(c.Symbol())
	}
	return b.String()
}

func categoryLabels(set domain.CategorySet) []string {
	list := set.List()
	labels := make([]string, 0, len(list))
	for _, c := range list {
		labels = append(labels, c.Label())
	}
	return labels
}

// documentJSON is the machine-readable form of a listed document.
type documentJSON struct {
	ID         int64         `json:"id"`
	CaseID     string        `json:"caseId"`
	Type       string        `json:"type"`
	ReceivedAt string        `json:"receivedAt"`
	Read       bool          `json:"read"`
	Categories []string      `json:"categories"`
	Tags       []string      `json:"tags"`
	Comments   []commentJSON `json:"comments,omitempty"`
}

type commentJSON struct {
	UUID    string `json:"uuid"`
	Page    int    `json:"page"`
	Comment string `json:"comment"`
}

// rowsJSON folds comment rows into the document they belong to.
func rowsJSON(rows []domain.Row) []documentJSON {
	out := make([]documentJSON, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if row.IsComment() {
			if len(out) > 0 {
				out[len(out)-1].Comments = commentsJSON(row.Annotations)
			}
			continue
		}
		out = append(out, toDocumentJSON(&row.Document))
	}
	return out
}

func toDocumentJSON(doc *domain.Document) documentJSON {
	categories := make([]string, 0, 3)
	for _, c := range doc.Categories.List() {
		categories = append(categories, c.String())
	}
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	return documentJSON{
		ID:         doc.ID,
		CaseID:     doc.CaseID,
		Type:       doc.Type,
		ReceivedAt: doc.FormattedReceivedAt(),
		Read:       doc.OpenedByCurrentUser,
		Categories: categories,
		Tags:       tags,
	}
}

func commentsJSON(annotations []domain.Annotation) []commentJSON {
	out := make([]commentJSON, 0, len(annotations))
	for _, a := range annotations {
		out = append(out, commentJSON{UUID: a.UUID, Page: a.Page, Comment: a.Comment})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
