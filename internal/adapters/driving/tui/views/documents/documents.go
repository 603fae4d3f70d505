// Package documents provides the document list view of a claims folder.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/components/dropdown"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/components/table"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

// errNoReader is reported when the view was built without a reader service.
var errNoReader = errors.New("reader service not available")

// footerLines is the space below the table: a blank line and the status bar.
const footerLines = 2

// View is the document list of one case. All list state lives in a
// domain.ListState that only changes through domain.Reduce.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	reader driving.ReaderService

	caseID string
	folder *driving.Folder
	state  domain.ListState
	rows   []domain.Row
	tags   []string
	shown  int
	viewed int

	builder    *ColumnBuilder
	table      *table.Table
	positioner *dropdown.Positioner
	pickers    map[domain.FilterType]*dropdown.Picker
	focus      domain.FilterType

	search *input.Field
	status *status.Bar

	selectedID     int64
	reloading      bool
	restorePending bool

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new document list view.
func NewView(s *styles.Styles, reader driving.ReaderService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	v := &View{
		styles:     s,
		keymap:     km,
		reader:     reader,
		state:      domain.NewListState(),
		positioner: dropdown.NewPositioner(),
		pickers: map[domain.FilterType]*dropdown.Picker{
			domain.FilterCategory: dropdown.NewPicker(s, domain.FilterCategory),
			domain.FilterTag:      dropdown.NewPicker(s, domain.FilterTag),
		},
		search: input.NewSearchInput(s),
		status: status.NewBar(s, km),
		width:  80,
		height: 24,
	}
	v.builder = &ColumnBuilder{
		State:      v.state,
		TableWidth: v.width,
		Highlight:  func(str string) string { return s.Highlight.Render(str) },
	}
	v.table = &table.Table{
		Columns: v.builder.Columns,
		KeyForRow: func(r *domain.Row) string {
			return r.Key()
		},
	}
	v.status.SetMode(status.ModeList)
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetCase switches the view to a case and loads its folder.
func (v *View) SetCase(caseID string) tea.Cmd {
	v.caseID = caseID
	v.folder = nil
	v.rows = nil
	v.state = domain.NewListState()
	v.selectedID = 0
	v.focus = ""
	v.reloading = false
	v.err = nil
	v.loading = true
	v.search.Reset()
	v.search.Blur()
	v.status.Clear()
	v.status.SetState(status.StateLoading)
	return v.loadFolder()
}

// Reload fetches the folder again, keeping the current list state. It is
// used when returning from a document so read flags and comments are
// current.
func (v *View) Reload() tea.Cmd {
	if v.caseID == "" {
		return nil
	}
	v.reloading = true
	return v.loadFolder()
}

// Leave returns a command persisting the list state of the case.
func (v *View) Leave() tea.Cmd {
	if v.caseID == "" || v.folder == nil {
		return nil
	}
	return v.saveViewState()
}

func (v *View) loadFolder() tea.Cmd {
	reader := v.reader
	caseID := v.caseID
	return func() tea.Msg {
		if reader == nil {
			return messages.FolderLoaded{Err: errNoReader}
		}
		folder, err := reader.LoadFolder(context.Background(), caseID)
		return messages.FolderLoaded{Folder: folder, Err: err}
	}
}

func (v *View) saveViewState() tea.Cmd {
	reader := v.reader
	caseID := v.caseID
	state := v.state.Clone()
	return func() tea.Msg {
		if reader == nil {
			return messages.ViewStateSaved{CaseID: caseID, Err: errNoReader}
		}
		err := reader.SaveViewState(context.Background(), caseID, state)
		return messages.ViewStateSaved{CaseID: caseID, Err: err}
	}
}

// Update handles messages for the document list. Dropdown anchors are
// re-measured after every message.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	cmd := v.update(msg)
	v.positioner.Refresh(v, v.TableTop())
	return v, cmd
}

func (v *View) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return nil

	case messages.FolderLoaded:
		v.handleFolderLoaded(msg)
		return nil

	case messages.ViewStateSaved:
		if msg.Err != nil {
			v.status.SetError(fmt.Errorf("saving list state: %w", msg.Err))
		}
		return nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.status.SetError(msg.Err)
		return nil

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.KeyMsg:
		if v.search.Focused() {
			return v.handleSearchKey(msg)
		}
		if v.focus != "" && v.state.IsDropdownOpen(v.focus) {
			return v.handleDropdownKey(msg)
		}
		return v.handleKey(msg)
	}

	if v.search.Focused() {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return cmd
	}
	return nil
}

func (v *View) handleFolderLoaded(msg messages.FolderLoaded) {
	v.loading = false
	if msg.Err != nil {
		v.reloading = false
		v.err = msg.Err
		v.status.SetError(msg.Err)
		return
	}
	if msg.Folder == nil || (v.caseID != "" && msg.Folder.Case.ID != v.caseID) {
		return
	}

	v.folder = msg.Folder
	v.caseID = msg.Folder.Case.ID
	if !v.reloading {
		v.state = msg.Folder.State.Clone()
		v.search.SetValue(v.state.Criteria.SearchQuery)
		v.restorePending = true
	}
	v.reloading = false
	v.err = nil
	v.status.Clear()
	v.tags = domain.TagVocabulary(msg.Folder.Documents)
	v.recompute()
	if v.restorePending {
		v.restoreScroll()
		return
	}
	if idx := domain.IndexOfDocument(v.rows, v.selectedID); idx >= 0 && v.ready {
		v.ensureVisible(idx)
	}
}

// dispatch applies an action to the list state and recomputes the rows.
func (v *View) dispatch(a domain.Action) {
	v.state = domain.Reduce(v.state, a)
	v.recompute()
}

// recompute rebuilds the rows, the column builder and the pickers from
// the folder and the list state.
func (v *View) recompute() {
	v.builder.State = v.state
	for t, p := range v.pickers {
		if t == domain.FilterTag {
			p.SetOptions(dropdown.TagOptions(v.tags, v.state.Criteria))
		} else {
			p.SetOptions(dropdown.CategoryOptions(v.state.Criteria))
		}
	}
	if v.folder == nil {
		v.rows = nil
		v.table.Rows = nil
		v.shown = 0
		v.viewed = 0
		return
	}

	docs := domain.ApplyCriteria(v.folder.Documents, v.folder.Annotations, v.state)
	v.rows = domain.ProjectRows(docs, v.folder.Annotations)
	v.shown = len(docs)
	v.viewed = 0
	for _, d := range docs {
		if d.OpenedByCurrentUser {
			v.viewed++
		}
	}
	v.builder.Annotations = v.folder.Annotations
	v.table.Rows = v.rows
	v.status.SetCounts(v.shown, len(v.folder.Documents))

	if domain.IndexOfDocument(v.rows, v.selectedID) < 0 {
		v.selectedID = 0
		if idx := v.firstDocumentFrom(v.state.ScrollTop); idx >= 0 {
			v.selectedID = v.rows[idx].Document.ID
		}
	}
	if v.state.ScrollTop >= len(v.rows) && len(v.rows) > 0 {
		v.state = domain.Reduce(v.state, domain.SetScrollPosition{ScrollTop: len(v.rows) - 1})
	}
}

// restoreScroll applies the saved scroll position. If the last read
// document is outside the viewport, it is scrolled to the top.
func (v *View) restoreScroll() {
	if !v.ready || v.folder == nil {
		return
	}
	v.restorePending = false
	if v.state.LastReadDocID == 0 {
		return
	}
	idx := domain.IndexOfDocument(v.rows, v.state.LastReadDocID)
	if idx < 0 {
		return
	}
	v.selectedID = v.state.LastReadDocID
	top, end := v.visibleRange()
	if idx < top || idx >= end {
		v.state = domain.Reduce(v.state, domain.SetScrollPosition{ScrollTop: idx})
	}
}

// handleKey handles key presses on the list.
//
//nolint:gocyclo // one case per list binding
func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.moveSelection(-1)
	case keymap.Matches(k, v.keymap.Down):
		v.moveSelection(1)
	case keymap.Matches(k, v.keymap.PageUp):
		v.moveSelection(-v.bodyHeight())
	case keymap.Matches(k, v.keymap.PageDown):
		v.moveSelection(v.bodyHeight())
	case keymap.Matches(k, v.keymap.Select):
		return v.openSelected()
	case keymap.Matches(k, v.keymap.ToggleComments):
		if v.selectedID != 0 {
			v.dispatch(domain.ToggleComments{DocumentID: v.selectedID})
		}
	case keymap.Matches(k, v.keymap.CategoryFilter):
		v.toggleDropdown(domain.FilterCategory)
	case keymap.Matches(k, v.keymap.TagFilter):
		v.toggleDropdown(domain.FilterTag)
	case keymap.Matches(k, v.keymap.SortDate):
		v.dispatch(domain.ChangeSort{Field: domain.SortByReceivedAt})
	case keymap.Matches(k, v.keymap.SortType):
		v.dispatch(domain.ChangeSort{Field: domain.SortByType})
	case keymap.Matches(k, v.keymap.ExpandAll):
		v.dispatch(domain.ToggleExpandAll{})
	case keymap.Matches(k, v.keymap.ClearFilters):
		v.dispatch(domain.ClearAllFilters{})
	case keymap.Matches(k, v.keymap.Search):
		return v.search.Focus()
	case keymap.Matches(k, v.keymap.Back):
		if v.closeDropdowns() {
			return nil
		}
		return tea.Batch(v.Leave(), func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewCases}
		})
	}
	return nil
}

// handleSearchKey edits the search bar. The query is applied as it is
// typed.
func (v *View) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.search.Reset()
		v.search.Blur()
		v.dispatch(domain.ClearSearch{})
		return nil
	case tea.KeyEnter:
		v.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if q := v.search.Value(); q != v.state.Criteria.SearchQuery {
		v.dispatch(domain.SetSearch{Query: q})
	}
	return cmd
}

// handleDropdownKey drives the focused filter dropdown.
func (v *View) handleDropdownKey(msg tea.KeyMsg) tea.Cmd {
	picker := v.pickers[v.focus]
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		picker.MoveUp()
	case keymap.Matches(k, v.keymap.Down):
		picker.MoveDown()
	case keymap.Matches(k, v.keymap.ToggleComments), keymap.Matches(k, v.keymap.Select):
		if a := picker.Toggle(); a != nil {
			v.dispatch(a)
		}
	case keymap.Matches(k, v.keymap.ClearFilters):
		v.dispatch(picker.Clear())
	case keymap.Matches(k, v.keymap.Back):
		v.toggleDropdown(v.focus)
	case keymap.Matches(k, v.keymap.CategoryFilter):
		v.toggleDropdown(domain.FilterCategory)
	case keymap.Matches(k, v.keymap.TagFilter):
		v.toggleDropdown(domain.FilterTag)
	}
	return nil
}

// handleMouse maps clicks on the table header to sort and filter
// actions, and clicks on rows to selection, comment toggling and opening.
func (v *View) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if v.folder == nil {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.scrollBy(-1)
		return nil
	case tea.MouseButtonWheelDown:
		v.scrollBy(1)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	headerY := v.TableTop()
	if msg.Y == headerY {
		col, ok := v.table.ColumnAt(msg.X)
		if !ok {
			return nil
		}
		switch {
		case col.Sortable():
			v.dispatch(domain.ChangeSort{Field: col.SortField})
		case col.Filter != nil:
			v.toggleDropdown(col.Filter.Type)
		}
		return nil
	}

	idx, offset := v.rowAtLine(msg.Y - headerY - 1)
	if idx < 0 {
		return nil
	}
	row := &v.rows[idx]
	if row.IsComment() {
		if offset >= len(row.Annotations) {
			return nil
		}
		v.selectedID = row.Document.ID
		return v.openAt(row.Annotations[offset].UUID)
	}
	v.selectedID = row.Document.ID
	col, _ := v.table.ColumnAt(msg.X)
	switch col.CellClass {
	case ClassComments:
		v.dispatch(domain.ToggleComments{DocumentID: row.Document.ID})
	case ClassDocumentType:
		return v.openSelected()
	}
	return nil
}

// openSelected records the selected document as last read and asks the
// app to open it. The list state is saved on the way out.
func (v *View) openSelected() tea.Cmd {
	return v.openAt("")
}

// openAt is openSelected with the document view focused on one comment.
func (v *View) openAt(annotationUUID string) tea.Cmd {
	doc := v.SelectedDocument()
	if doc == nil {
		return nil
	}
	selected := *doc
	v.dispatch(domain.SelectDocument{DocumentID: selected.ID})
	return tea.Batch(v.saveViewState(), func() tea.Msg {
		return messages.DocumentSelected{Document: selected, AnnotationUUID: annotationUUID}
	})
}

// toggleDropdown opens or closes a dropdown and moves the keyboard focus
// to the most recently opened one.
func (v *View) toggleDropdown(t domain.FilterType) {
	v.dispatch(domain.ToggleDropdown{Type: t})
	if v.state.IsDropdownOpen(t) {
		v.focus = t
		return
	}
	if v.focus == t {
		v.focus = ""
		for _, other := range domain.FilterTypes {
			if v.state.IsDropdownOpen(other) {
				v.focus = other
			}
		}
	}
}

// closeDropdowns closes every open dropdown and reports whether any was
// open.
func (v *View) closeDropdowns() bool {
	closed := false
	for _, t := range domain.FilterTypes {
		if v.state.IsDropdownOpen(t) {
			v.dispatch(domain.ToggleDropdown{Type: t})
			closed = true
		}
	}
	v.focus = ""
	return closed
}

// moveSelection moves the cursor by delta document rows and scrolls it
// into view.
func (v *View) moveSelection(delta int) {
	var docRows []int
	current := 0
	for i := range v.rows {
		if v.rows[i].IsComment() {
			continue
		}
		if v.rows[i].Document.ID == v.selectedID {
			current = len(docRows)
		}
		docRows = append(docRows, i)
	}
	if len(docRows) == 0 {
		return
	}

	next := current + delta
	if next < 0 {
		next = 0
	}
	if next >= len(docRows) {
		next = len(docRows) - 1
	}
	v.selectedID = v.rows[docRows[next]].Document.ID
	v.ensureVisible(docRows[next])
}

// ensureVisible scrolls so row idx is inside the viewport.
func (v *View) ensureVisible(idx int) {
	top := v.state.ScrollTop
	if idx < top {
		top = idx
	} else {
		for top < idx && v.linesBetween(top, idx) > v.bodyHeight() {
			top++
		}
	}
	if top != v.state.ScrollTop {
		v.dispatch(domain.SetScrollPosition{ScrollTop: top})
	}
}

func (v *View) scrollBy(delta int) {
	top := v.state.ScrollTop + delta
	if top > len(v.rows)-1 {
		top = len(v.rows) - 1
	}
	if top < 0 {
		top = 0
	}
	v.dispatch(domain.SetScrollPosition{ScrollTop: top})
}

// linesBetween counts the lines rows from..to (inclusive) render to.
func (v *View) linesBetween(from, to int) int {
	n := 0
	for i := from; i <= to && i < len(v.rows); i++ {
		n += v.table.RowHeight(i)
	}
	return n
}

// visibleRange returns the rows [top, end) that fit in the viewport.
func (v *View) visibleRange() (top, end int) {
	top = v.state.ScrollTop
	if top > len(v.rows) {
		top = len(v.rows)
	}
	lines := 0
	end = top
	for end < len(v.rows) {
		h := v.table.RowHeight(end)
		if lines+h > v.bodyHeight() && end > top {
			break
		}
		lines += h
		end++
	}
	return top, end
}

// rowAtLine returns the row rendered at a line of the table body and
// the line within that row, or -1.
func (v *View) rowAtLine(line int) (int, int) {
	if line < 0 {
		return -1, 0
	}
	top, end := v.visibleRange()
	y := 0
	for i := top; i < end; i++ {
		h := v.table.RowHeight(i)
		if line < y+h {
			return i, line - y
		}
		y += h
	}
	return -1, 0
}

func (v *View) firstDocumentFrom(start int) int {
	for i := start; i < len(v.rows); i++ {
		if !v.rows[i].IsComment() {
			return i
		}
	}
	for i := range v.rows {
		if !v.rows[i].IsComment() {
			return i
		}
	}
	return -1
}

// bodyHeight is the number of lines available to table rows.
func (v *View) bodyHeight() int {
	h := v.height - v.TableTop() - 1 - footerLines
	if h < 1 {
		return 1
	}
	return h
}

// Measure implements dropdown.Measurer from the table header layout. The
// rectangle is relative to the table's first line.
func (v *View) Measure(t domain.FilterType) (dropdown.Rect, bool) {
	if v.folder == nil {
		return dropdown.Rect{}, false
	}
	cell, ok := v.table.FilterCell(t)
	if !ok {
		return dropdown.Rect{}, false
	}
	return dropdown.Rect{Bottom: 1, Right: cell.Right()}, true
}

// TableTop returns the screen line of the table header.
func (v *View) TableTop() int {
	return lipgloss.Height(v.renderListHeader())
}

// View renders the document list.
func (v *View) View() string {
	var b strings.Builder

	if v.folder == nil {
		b.WriteString(v.styles.Title.Render("Claims Folder"))
		b.WriteString("\n\n")
		switch {
		case v.loading:
			b.WriteString(v.styles.Muted.Render("Loading documents..."))
		case v.err != nil:
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		default:
			b.WriteString(v.styles.Muted.Render("No case selected."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	b.WriteString(v.renderListHeader())
	b.WriteString("\n")
	b.WriteString(v.table.RenderHeader(v.styles.TableHeader, v.styles.HeaderActive))
	b.WriteString("\n")
	b.WriteString(v.renderBody())
	b.WriteString("\n\n")
	b.WriteString(v.status.View())

	out := b.String()
	for _, t := range domain.FilterTypes {
		if !v.state.IsDropdownOpen(t) {
			continue
		}
		pos, ok := v.positioner.Position(t)
		if !ok {
			continue
		}
		picker := v.pickers[t]
		top, left := dropdown.Anchor(pos, picker.Width())
		out = dropdown.Overlay(out, picker.View(), top, left)
	}
	return out
}

// renderListHeader renders everything above the table: the veteran, the
// read progress over the filtered documents, the search bar, the document count with the expand
// toggle, and the limited results alert.
func (v *View) renderListHeader() string {
	if v.folder == nil {
		return ""
	}
	lines := []string{
		v.styles.Title.Render(fmt.Sprintf("%s's Claims Folder", v.folder.Case.VeteranName)) +
			v.styles.Muted.Render(fmt.Sprintf("  (%s)", v.folder.Case.ID)),
		v.styles.Normal.Render(fmt.Sprintf("You've viewed %d out of %d documents",
			v.viewed, v.shown)),
		v.search.View(),
	}

	expand := "[e] Expand all"
	if v.state.ExpandAll {
		expand = "[e] Collapse all"
	}
	lines = append(lines, v.styles.Subtitle.Render(fmt.Sprintf("%d Documents", v.shown))+
		"   "+v.styles.Muted.Render(expand))

	if kinds := v.state.Criteria.ActiveFilterKinds(); len(kinds) > 0 {
		alert := fmt.Sprintf("Showing limited results: filtered by %s.", strings.Join(kinds, " and "))
		lines = append(lines, v.styles.Alert.Render(alert)+" "+v.styles.Muted.Render("[x] clear all filters"))
	}
	if v.err != nil {
		lines = append(lines, v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	}
	return strings.Join(lines, "\n")
}

// renderBody renders the visible rows, padded to the viewport height.
func (v *View) renderBody() string {
	height := v.bodyHeight()
	if len(v.rows) == 0 {
		msg := "No documents match the current filters."
		if len(v.folder.Documents) == 0 {
			msg = "This case has no documents."
		}
		return v.styles.Muted.Render(msg) + strings.Repeat("\n", height-1)
	}

	top, end := v.visibleRange()
	lines := make([]string, 0, height)
	for i := top; i < end; i++ {
		lines = append(lines, strings.Split(v.table.RenderRow(i, v.rowStyle(i)), "\n")...)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (v *View) rowStyle(i int) lipgloss.Style {
	row := &v.rows[i]
	if row.IsComment() {
		return v.styles.Comment
	}
	return v.styles.Row(row.Document.OpenedByCurrentUser, row.Document.ID == v.selectedID)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.builder.TableWidth = width
	v.search.SetWidth(width / 2)
	v.status.SetWidth(width)
	if v.restorePending {
		v.restoreScroll()
	}
	v.positioner.Refresh(v, v.TableTop())
}

// CaseID returns the case shown by the view.
func (v *View) CaseID() string {
	return v.caseID
}

// Folder returns the loaded folder.
func (v *View) Folder() *driving.Folder {
	return v.folder
}

// State returns a copy of the list state.
func (v *View) State() domain.ListState {
	return v.state.Clone()
}

// Rows returns the projected rows.
func (v *View) Rows() []domain.Row {
	return v.rows
}

// Table returns the table model.
func (v *View) Table() *table.Table {
	return v.table
}

// Positioner returns the dropdown positioner.
func (v *View) Positioner() *dropdown.Positioner {
	return v.positioner
}

// SelectedDocument returns the document under the cursor.
func (v *View) SelectedDocument() *domain.Document {
	idx := domain.IndexOfDocument(v.rows, v.selectedID)
	if idx < 0 {
		return nil
	}
	return &v.rows[idx].Document
}

// SearchFocused reports whether the search bar has focus.
func (v *View) SearchFocused() bool {
	return v.search.Focused()
}

// FocusedDropdown returns the filter type whose dropdown takes keys.
func (v *View) FocusedDropdown() domain.FilterType {
	return v.focus
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
