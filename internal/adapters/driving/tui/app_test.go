package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

func testFolder() *driving.Folder {
	return &driving.Folder{
		Case: domain.Case{ID: "case-1", VeteranName: "Joe Snuffy"},
		Documents: []domain.Document{
			{ID: 1, CaseID: "case-1", Type: "Form 9", ReceivedAt: time.Date(2017, 5, 3, 0, 0, 0, 0, time.UTC)},
			{ID: 2, CaseID: "case-1", Type: "NOD", ReceivedAt: time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
		Annotations: map[int64][]domain.Annotation{},
		State:       domain.NewListState(),
	}
}

func newTestPorts() *Ports {
	return &Ports{
		Case: &MockCaseService{
			ListFunc: func(context.Context) ([]domain.Case, error) {
				return []domain.Case{{ID: "case-1", VeteranName: "Joe Snuffy"}}, nil
			},
		},
		Document:   &MockDocumentService{},
		Annotation: &MockAnnotationService{},
		Reader: &MockReaderService{
			LoadFolderFunc: func(context.Context, string) (*driving.Folder, error) {
				return testFolder(), nil
			},
		},
	}
}

func newTestApp(t *testing.T) (*App, *Ports) {
	t.Helper()
	ports := newTestPorts()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 30)
	return app, ports
}

// drive runs a command and feeds every resulting message back into the
// app, flattening batches. Quit and unknown internal messages stop there.
func drive(app *App, cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drive(app, c)...)
		}
		return out
	}
	switch msg.(type) {
	case nil, tea.QuitMsg:
		return []tea.Msg{msg}
	}
	_, next := app.Update(msg)
	return append([]tea.Msg{msg}, drive(app, next)...)
}

func openCase(t *testing.T, app *App) {
	t.Helper()
	_, cmd := app.Update(messages.CaseSelected{CaseID: "case-1"})
	drive(app, cmd)
	require.Equal(t, messages.ViewDocuments, app.CurrentView())
	require.NotNil(t, app.documentsView.Folder())
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := newTestPorts()
	ports.Reader = nil

	app, err := NewApp(ports)

	assert.ErrorIs(t, err, ErrMissingReaderService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_WithCaseStartsOnDocumentList(t *testing.T) {
	app, _ := newTestApp(t)
	app.WithCase("case-1")

	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
	drive(app, app.Init())

	require.NotNil(t, app.documentsView.Folder())
	assert.Contains(t, ansi.Strip(app.View()), "Joe Snuffy")
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_MenuToCases(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drive(app, cmd)

	assert.Equal(t, messages.ViewCases, app.CurrentView())
	require.Len(t, app.casesView.Cases(), 1)
	assert.Contains(t, ansi.Strip(app.View()), "Joe Snuffy")
}

func TestApp_CasesEnterOpensDocumentList(t *testing.T) {
	app, _ := newTestApp(t)
	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewCases})
	drive(app, cmd)

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drive(app, cmd)

	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
	assert.Equal(t, "case-1", app.documentsView.CaseID())
}

func TestApp_OpenAndCloseDocument(t *testing.T) {
	app, ports := newTestApp(t)
	openCase(t, app)
	reader := ports.Reader.(*MockReaderService)
	loads := reader.Loads

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drive(app, cmd)

	assert.Equal(t, messages.ViewDocument, app.CurrentView())
	require.NotNil(t, app.documentView.Document())
	assert.True(t, app.documentView.Document().OpenedByCurrentUser)
	assert.NotEmpty(t, reader.Saved)

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drive(app, cmd)

	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
	assert.Equal(t, loads+1, reader.Loads)
}

func TestApp_EscFromDocumentListSavesState(t *testing.T) {
	app, ports := newTestApp(t)
	openCase(t, app)
	reader := ports.Reader.(*MockReaderService)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drive(app, cmd)

	assert.Equal(t, messages.ViewCases, app.CurrentView())
	assert.Len(t, reader.Saved, 1)
}

func TestApp_EscFromCasesAndHelp(t *testing.T) {
	for _, view := range []messages.ViewType{messages.ViewCases, messages.ViewHelp} {
		t.Run(view.String(), func(t *testing.T) {
			app, _ := newTestApp(t)
			app.Update(messages.ViewChanged{View: view})

			app.Update(tea.KeyMsg{Type: tea.KeyEsc})

			assert.Equal(t, messages.ViewMenu, app.CurrentView())
		})
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_QuitWithOpenCaseSaves(t *testing.T) {
	app, _ := newTestApp(t)
	openCase(t, app)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)

	_, isQuit := cmd().(tea.QuitMsg)
	assert.False(t, isQuit, "quit waits for the list state to be saved")
}

func TestApp_QWhileSearchingTypes(t *testing.T) {
	app, _ := newTestApp(t)
	openCase(t, app)
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, app.documentsView.SearchFocused())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
	assert.Equal(t, "q", app.documentsView.State().Criteria.SearchQuery)
}

func TestApp_MouseOnlyReachesDocumentList(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})

	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)
	openCase(t, app)

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.EqualError(t, app.documentsView.Err(), "boom")
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)

	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_SettingsWithoutService(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSettings})
	drive(app, cmd)

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Error(t, app.settingsView.Err())
}

func TestApp_View(t *testing.T) {
	tests := []struct {
		view messages.ViewType
		want string
	}{
		{messages.ViewMenu, "Claims Folders"},
		{messages.ViewCases, "Claims Folders"},
		{messages.ViewHelp, "Document list:"},
		{messages.ViewSettings, "Settings"},
		{messages.ViewDocument, "No document selected."},
		{messages.ViewDocuments, "No case selected."},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			app, _ := newTestApp(t)
			app.currentView = tt.view

			assert.Contains(t, ansi.Strip(app.View()), tt.want)
		})
	}
}
