package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/views/cases"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView      *menu.View
	casesView     *cases.View
	documentsView *documents.View
	documentView  *document.View
	settingsView  *settings.View

	// startCase, when set, opens the document list of that case on start.
	startCase string

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		casesView:     cases.NewView(s, ports.Case),
		documentsView: documents.NewView(s, ports.Reader),
		documentView:  document.NewView(s, ports.Document, ports.Annotation),
		settingsView:  settings.NewView(s, ports.Settings),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithCase makes the app start on the document list of a case.
func (a *App) WithCase(caseID string) *App {
	a.startCase = caseID
	if caseID != "" {
		a.currentView = messages.ViewDocuments
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("reader - Claims Folder")}
	if a.startCase != "" {
		cmds = append(cmds, a.documentsView.SetCase(a.startCase))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.currentView == messages.ViewDocuments {
			a.documentsView, cmd = a.documentsView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewCases:
			return a, a.casesView.Init()
		case messages.ViewSettings:
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewDocuments, messages.ViewDocument, messages.ViewHelp:
		}
		return a, nil

	case messages.CaseSelected:
		a.currentView = messages.ViewDocuments
		return a, a.documentsView.SetCase(msg.CaseID)

	case messages.DocumentSelected:
		a.currentView = messages.ViewDocument
		return a, a.documentView.SetDocumentAt(msg.Document, msg.AnnotationUUID)

	case messages.DocumentClosed:
		a.currentView = messages.ViewDocuments
		return a, a.documentsView.Reload()

	case messages.CasesLoaded:
		a.casesView, cmd = a.casesView.Update(msg)
		return a, cmd

	case messages.FolderLoaded, messages.ViewStateSaved:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentMarkedRead, messages.AnnotationsLoaded,
		messages.AnnotationAdded, messages.AnnotationDeleted:
		a.documentView, cmd = a.documentView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewDocument:
			a.documentView, cmd = a.documentView.Update(msg)
		case messages.ViewMenu, messages.ViewCases, messages.ViewSettings, messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, a.quit()
	}

	// Cursor blinks and other component messages go to the active view.
	switch a.currentView {
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewMenu, messages.ViewCases, messages.ViewSettings, messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		return a, a.quit()
	}
	if msg.String() == "q" && !a.typing() && a.currentView != messages.ViewMenu {
		return a, a.quit()
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCases:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
			return a, nil
		}
		a.casesView, cmd = a.casesView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return a, cmd
}

// typing reports whether the active view has a focused text input, in
// which case "q" is text rather than a quit request.
func (a *App) typing() bool {
	switch a.currentView {
	case messages.ViewDocuments:
		return a.documentsView.SearchFocused()
	case messages.ViewDocument:
		return a.documentView.Composing()
	case messages.ViewMenu, messages.ViewCases, messages.ViewSettings, messages.ViewHelp:
	}
	return false
}

// quit saves the list state of the open case before exiting.
func (a *App) quit() tea.Cmd {
	if save := a.documentsView.Leave(); save != nil {
		return tea.Sequence(save, tea.Quit)
	}
	return tea.Quit
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewCases:
		return a.casesView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocument:
		return a.documentView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Document list:
  j/k, ↑/↓    Move between documents
  enter       Open document
  space       Show or hide comments
  e           Expand or collapse all comments
  s / y       Sort by receipt date / document type
  c / t       Category / issue tag filter
  x           Clear all filters
  /           Search documents and comments
  esc         Close dropdown, back to cases

Document:
  a           Add comment
  d           Delete comment
  esc         Back to the list

Mouse:
  Click a column header to sort or filter. Click a row to select it.

  ctrl+c, q   Quit

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(a.ctx),
	)
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.casesView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.documentView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
