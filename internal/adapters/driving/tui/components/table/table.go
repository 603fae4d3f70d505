// Package table provides a two-level table component for the TUI. The
// table asks a column function for the cells of every row, so different
// row kinds can use different layouts (a comment row spans the whole
// table with a single cell).
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// gap is the number of blank cells between two columns.
const gap = 1

// Filter is the filter control rendered in a column header.
type Filter struct {
	Type domain.FilterType

	// Selected renders the control as active: its dropdown is open or a
	// filter of its type is set.
	Selected bool
}

// Column describes one cell position of a row.
type Column struct {
	// Header is the header label, including any sort indicator.
	Header string

	// Value renders the cell. Multi-line values grow the row.
	Value func(row *domain.Row) string

	// CellClass names the kind of cell, e.g. "receipt-date-column".
	CellClass string

	// Width is the cell width in terminal cells.
	Width int

	// Span returns how many header columns the cell covers. Nil means 1.
	Span func(row *domain.Row) int

	// SortField is set on sortable columns.
	SortField domain.SortField

	// Filter is set on columns with a filter control.
	Filter *Filter
}

// Sortable reports whether activating the header changes the sort.
func (c *Column) Sortable() bool {
	return c.SortField != ""
}

func (c *Column) span(row *domain.Row) int {
	if c.Span == nil {
		return 1
	}
	if n := c.Span(row); n > 1 {
		return n
	}
	return 1
}

// Table is the table contract: a column function evaluated per row (nil
// for the header), the rows, and the identity of each row.
type Table struct {
	Columns   func(row *domain.Row) []Column
	Rows      []domain.Row
	KeyForRow func(row *domain.Row) string
}

// HeaderCell is the measured position of one header column.
type HeaderCell struct {
	Column Column
	X      int
	Width  int
}

// Right returns the first cell column after the header cell.
func (h HeaderCell) Right() int {
	return h.X + h.Width
}

// Header lays out the header columns from left to right.
func (t *Table) Header() []HeaderCell {
	if t.Columns == nil {
		return nil
	}
	cols := t.Columns(nil)
	cells := make([]HeaderCell, 0, len(cols))
	x := 0
	for _, c := range cols {
		cells = append(cells, HeaderCell{Column: c, X: x, Width: c.Width})
		x += c.Width + gap
	}
	return cells
}

// Width returns the full width of the table.
func (t *Table) Width() int {
	cells := t.Header()
	if len(cells) == 0 {
		return 0
	}
	return cells[len(cells)-1].Right()
}

// ColumnAt returns the header column under the cell column x.
func (t *Table) ColumnAt(x int) (Column, bool) {
	for _, h := range t.Header() {
		if x >= h.X && x < h.Right() {
			return h.Column, true
		}
	}
	return Column{}, false
}

// FilterCell returns the header cell holding the filter control of a type.
func (t *Table) FilterCell(ft domain.FilterType) (HeaderCell, bool) {
	for _, h := range t.Header() {
		if h.Column.Filter != nil && h.Column.Filter.Type == ft {
			return h, true
		}
	}
	return HeaderCell{}, false
}

// Keys returns the key of every row in order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.Rows))
	for i := range t.Rows {
		if t.KeyForRow != nil {
			keys[i] = t.KeyForRow(&t.Rows[i])
		} else {
			keys[i] = t.Rows[i].Key()
		}
	}
	return keys
}

// RenderHeader renders the header line. Headers of columns whose filter
// control is selected use the active style.
func (t *Table) RenderHeader(normal, active lipgloss.Style) string {
	cells := t.Header()
	parts := make([]string, 0, len(cells))
	for _, h := range cells {
		style := normal
		if h.Column.Filter != nil && h.Column.Filter.Selected {
			style = active
		}
		parts = append(parts, style.Render(fit(h.Column.Header, h.Width)))
	}
	return strings.Join(parts, strings.Repeat(" ", gap))
}

// RowHeight returns the number of lines row i renders to.
func (t *Table) RowHeight(i int) int {
	if i < 0 || i >= len(t.Rows) {
		return 0
	}
	height := 1
	row := &t.Rows[i]
	for _, c := range t.Columns(row) {
		if c.Value == nil {
			continue
		}
		if n := strings.Count(c.Value(row), "\n") + 1; n > height {
			height = n
		}
	}
	return height
}

// RenderRow renders row i with the given style. Cells are fitted to the
// header widths; a cell spanning several columns takes their combined
// width.
func (t *Table) RenderRow(i int, style lipgloss.Style) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	row := &t.Rows[i]
	header := t.Header()
	height := t.RowHeight(i)

	lines := make([]string, height)
	col := 0
	for _, c := range t.Columns(row) {
		if col >= len(header) {
			break
		}
		n := c.span(row)
		last := col + n - 1
		if last >= len(header) {
			last = len(header) - 1
		}
		width := header[last].Right() - header[col].X

		var valueLines []string
		if c.Value != nil {
			valueLines = strings.Split(c.Value(row), "\n")
		}
		for l := 0; l < height; l++ {
			v := ""
			if l < len(valueLines) {
				v = valueLines[l]
			}
			if col > 0 {
				lines[l] += strings.Repeat(" ", gap)
			}
			lines[l] += fit(v, width)
		}
		col = last + 1
	}

	for l := range lines {
		lines[l] = style.Render(lines[l])
	}
	return strings.Join(lines, "\n")
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
