package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	settings domain.AppSettings
	getErr   error
	saveErr  error
	saves    int
}

func newMock() *MockSettingsService {
	return &MockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = *settings
	return nil
}

func (m *MockSettingsService) Set(_, _ string) error { return nil }

func (m *MockSettingsService) Keys() []string { return nil }

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func loaded(t *testing.T, svc driving.SettingsService) *View {
	t.Helper()
	v := NewView(styles.DefaultStyles(), svc)
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func press(v *View, key tea.KeyMsg) {
	_, cmd := v.Update(key)
	if cmd != nil {
		v.Update(cmd())
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Nil(t, v.Settings())
	assert.Contains(t, ansi.Strip(v.View()), "Loading settings...")
}

func TestView_InitLoadsSettings(t *testing.T) {
	v := loaded(t, newMock())

	require.NotNil(t, v.Settings())
	view := ansi.Strip(v.View())
	assert.Contains(t, view, "Receipt date")
	assert.Contains(t, view, "Ascending")
	assert.Contains(t, view, "Off")
}

func TestView_LoadError(t *testing.T) {
	svc := newMock()
	svc.getErr = errors.New("config unreadable")

	v := loaded(t, svc)

	assert.EqualError(t, v.Err(), "config unreadable")
	assert.Contains(t, ansi.Strip(v.View()), "Error: config unreadable")
}

func TestView_NilService(t *testing.T) {
	v := loaded(t, nil)

	assert.ErrorIs(t, v.Err(), errNoSettingsService)
}

func TestView_ToggleItems(t *testing.T) {
	svc := newMock()
	v := loaded(t, svc)

	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, domain.SortByType, svc.settings.List.DefaultSort.SortBy)

	press(v, tea.KeyMsg{Type: tea.KeyDown})
	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, svc.settings.List.DefaultSort.SortAscending)

	press(v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, svc.settings.List.ExpandComments)

	assert.Equal(t, 3, svc.saves)
	view := ansi.Strip(v.View())
	assert.Contains(t, view, "Document type")
	assert.Contains(t, view, "Descending")
	assert.Contains(t, view, "Saved")
}

func TestView_ToggleSortBack(t *testing.T) {
	svc := newMock()
	v := loaded(t, svc)

	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	press(v, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, domain.SortByReceivedAt, svc.settings.List.DefaultSort.SortBy)
}

func TestView_SaveErrorReloads(t *testing.T) {
	svc := newMock()
	v := loaded(t, svc)
	svc.saveErr = errors.New("read-only")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, reload := v.Update(cmd())

	assert.EqualError(t, v.Err(), "read-only")
	require.NotNil(t, reload)
	v.Update(reload())
	assert.Equal(t, domain.SortByReceivedAt, v.Settings().List.DefaultSort.SortBy)
}

func TestView_ResetDefaults(t *testing.T) {
	svc := newMock()
	svc.settings.List.ExpandComments = true
	v := loaded(t, svc)

	press(v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	assert.False(t, svc.settings.List.ExpandComments)
	assert.False(t, v.Settings().List.ExpandComments)
}

func TestView_ToggleBeforeLoad(t *testing.T) {
	v := NewView(nil, newMock())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_CursorBounds(t *testing.T) {
	v := loaded(t, newMock())

	press(v, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.Selected())

	for i := 0; i < 5; i++ {
		press(v, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 2, v.Selected())
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := loaded(t, newMock())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}
