// Package document provides the single document view: metadata and the
// comments attached to the document's pages.
package document

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

var (
	errNoDocumentService   = errors.New("document service not available")
	errNoAnnotationService = errors.New("annotation service not available")
	errInvalidPage         = errors.New("page must be a positive number")
)

// Form fields of the comment composer.
const (
	fieldPage = iota
	fieldComment
)

// View shows one document. Opening it marks the document read.
type View struct {
	styles            *styles.Styles
	keymap            *keymap.KeyMap
	documentService   driving.DocumentService
	annotationService driving.AnnotationService

	document    *domain.Document
	annotations []domain.Annotation
	selected    int
	focusUUID   string

	composing    bool
	focusField   int
	pageInput    *input.Field
	commentInput *input.Field

	status *status.Bar
	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new document view.
func NewView(s *styles.Styles, documents driving.DocumentService, annotations driving.AnnotationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetMode(status.ModeDocument)

	return &View{
		styles:            s,
		keymap:            km,
		documentService:   documents,
		annotationService: annotations,
		pageInput:         input.NewField(s, "Page", "1"),
		commentInput:      input.NewField(s, "Comment", "Write a comment..."),
		status:            bar,
		width:             80,
		height:            24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDocument shows a document, marks it read and loads its comments.
func (v *View) SetDocument(doc domain.Document) tea.Cmd {
	return v.SetDocumentAt(doc, "")
}

// SetDocumentAt is SetDocument with the cursor placed on the comment
// with the given UUID once the comments have loaded.
func (v *View) SetDocumentAt(doc domain.Document, annotationUUID string) tea.Cmd {
	v.document = &doc
	v.annotations = nil
	v.selected = 0
	v.focusUUID = annotationUUID
	v.err = nil
	v.cancelCompose()
	v.status.Clear()
	return tea.Batch(v.markRead(doc.ID), v.loadAnnotations(doc.ID))
}

func (v *View) markRead(id int64) tea.Cmd {
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentMarkedRead{Err: errNoDocumentService}
		}
		doc, err := svc.MarkRead(context.Background(), id)
		return messages.DocumentMarkedRead{Document: doc, Err: err}
	}
}

func (v *View) loadAnnotations(id int64) tea.Cmd {
	svc := v.annotationService
	return func() tea.Msg {
		if svc == nil {
			return messages.AnnotationsLoaded{DocumentID: id, Err: errNoAnnotationService}
		}
		annotations, err := svc.ListByDocument(context.Background(), id)
		return messages.AnnotationsLoaded{DocumentID: id, Annotations: annotations, Err: err}
	}
}

func (v *View) addAnnotation(id int64, page int, comment string) tea.Cmd {
	svc := v.annotationService
	return func() tea.Msg {
		if svc == nil {
			return messages.AnnotationAdded{Err: errNoAnnotationService}
		}
		a, err := svc.Add(context.Background(), id, page, comment)
		return messages.AnnotationAdded{Annotation: a, Err: err}
	}
}

func (v *View) deleteAnnotation(uuid string) tea.Cmd {
	svc := v.annotationService
	return func() tea.Msg {
		if svc == nil {
			return messages.AnnotationDeleted{UUID: uuid, Err: errNoAnnotationService}
		}
		err := svc.Delete(context.Background(), uuid)
		return messages.AnnotationDeleted{UUID: uuid, Err: err}
	}
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.composing {
			return v.handleComposeKey(msg)
		}
		return v.handleKey(msg)

	case messages.DocumentMarkedRead:
		if msg.Err != nil {
			v.setError(msg.Err)
		} else if msg.Document != nil && v.document != nil && msg.Document.ID == v.document.ID {
			v.document.OpenedByCurrentUser = msg.Document.OpenedByCurrentUser
		}
		return v, nil

	case messages.AnnotationsLoaded:
		if v.document == nil || msg.DocumentID != v.document.ID {
			return v, nil
		}
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.annotations = msg.Annotations
		if v.focusUUID != "" {
			if i := slices.IndexFunc(v.annotations, func(a domain.Annotation) bool {
				return a.UUID == v.focusUUID
			}); i >= 0 {
				v.selected = i
			}
			v.focusUUID = ""
		}
		if v.selected >= len(v.annotations) {
			v.selected = max(len(v.annotations)-1, 0)
		}
		return v, nil

	case messages.AnnotationAdded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.cancelCompose()
		v.status.SetState(status.StateSaved)
		v.status.SetMessage("Comment added")
		return v, v.reload()

	case messages.AnnotationDeleted:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.status.SetState(status.StateSaved)
		v.status.SetMessage("Comment deleted")
		return v, v.reload()

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	return v, nil
}

func (v *View) reload() tea.Cmd {
	if v.document == nil {
		return nil
	}
	return v.loadAnnotations(v.document.ID)
}

func (v *View) setError(err error) {
	v.err = err
	v.status.SetError(err)
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.annotations)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.AddComment):
		if v.document != nil {
			return v, v.startCompose()
		}
	case keymap.Matches(k, v.keymap.DeleteComment):
		if v.selected < len(v.annotations) {
			return v, v.deleteAnnotation(v.annotations[v.selected].UUID)
		}
	case keymap.Matches(k, v.keymap.Back):
		var id int64
		if v.document != nil {
			id = v.document.ID
		}
		return v, func() tea.Msg {
			return messages.DocumentClosed{DocumentID: id}
		}
	}
	return v, nil
}

func (v *View) handleComposeKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.cancelCompose()
		return v, nil
	case tea.KeyTab, tea.KeyShiftTab:
		return v, v.focus(1 - v.focusField)
	case tea.KeyEnter:
		return v, v.submit()
	}

	var cmd tea.Cmd
	if v.focusField == fieldPage {
		v.pageInput, cmd = v.pageInput.Update(msg)
	} else {
		v.commentInput, cmd = v.commentInput.Update(msg)
	}
	return v, cmd
}

func (v *View) startCompose() tea.Cmd {
	v.composing = true
	v.pageInput.SetValue("1")
	v.commentInput.Reset()
	return v.focus(fieldComment)
}

func (v *View) cancelCompose() {
	v.composing = false
	v.pageInput.Blur()
	v.commentInput.Blur()
	v.pageInput.Reset()
	v.commentInput.Reset()
}

func (v *View) focus(field int) tea.Cmd {
	v.focusField = field
	if field == fieldPage {
		v.commentInput.Blur()
		return v.pageInput.Focus()
	}
	v.pageInput.Blur()
	return v.commentInput.Focus()
}

// submit validates the form and adds the comment. Empty comments are
// rejected by the service.
func (v *View) submit() tea.Cmd {
	page, err := strconv.Atoi(strings.TrimSpace(v.pageInput.Value()))
	if err != nil || page < 1 {
		v.setError(errInvalidPage)
		return nil
	}
	return v.addAnnotation(v.document.ID, page, v.commentInput.Value())
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	if v.document == nil {
		b.WriteString(v.styles.Title.Render("Document"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No document selected."))
		b.WriteString("\n\n")
		b.WriteString(v.status.View())
		return b.String()
	}

	doc := v.document
	b.WriteString(v.styles.Title.Render(doc.Type))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 1)))
	b.WriteString("\n\n")

	for _, line := range v.metadataLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Comments (%d)", len(v.annotations))))
	b.WriteString("\n")
	if len(v.annotations) == 0 {
		b.WriteString(v.styles.Muted.Render("  No comments on this document."))
		b.WriteString("\n")
	}
	for i, a := range v.annotations {
		line := fmt.Sprintf("Page %d: %s", a.Page, a.Comment)
		if i == v.selected && !v.composing {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if v.composing {
		b.WriteString("\n")
		b.WriteString(v.pageInput.View())
		b.WriteString("\n")
		b.WriteString(v.commentInput.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[tab] switch field  [enter] save  [esc] cancel"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.status.View())
	return b.String()
}

func (v *View) metadataLines() []string {
	doc := v.document
	categories := make([]string, 0, 3)
	for _, c := range doc.Categories.List() {
		categories = append(categories, c.Label())
	}
	read := "Unread"
	if doc.OpenedByCurrentUser {
		read = "Read"
	}
	fields := []struct{ label, value string }{
		{"Document", doc.Key()},
		{"Type", doc.Type},
		{"Received", doc.FormattedReceivedAt()},
		{"Categories", strings.Join(categories, ", ")},
		{"Issue Tags", strings.Join(doc.Tags, ", ")},
		{"Status", read},
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, v.styles.Subtitle.Render(fmt.Sprintf("%-12s", f.label+":"))+" "+
			v.styles.Normal.Render(f.value))
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.status.SetWidth(width)
	v.pageInput.SetWidth(30)
	v.commentInput.SetWidth(width - 4)
}

// Document returns the shown document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Annotations returns the comments of the document.
func (v *View) Annotations() []domain.Annotation {
	return v.annotations
}

// Selected returns the index of the comment under the cursor.
func (v *View) Selected() int {
	return v.selected
}

// Composing reports whether the comment form is open.
func (v *View) Composing() bool {
	return v.composing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
