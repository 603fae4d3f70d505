// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

var errNoSettingsService = errors.New("settings service not available")

// Item is one editable setting.
type Item int

// Editable settings, in display order.
const (
	ItemDefaultSort Item = iota
	ItemSortDirection
	ItemExpandComments
	itemCount
)

// View edits the defaults a fresh document list starts from. Each change
// is saved immediately.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	saved    bool
	selected int

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: errNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSettings(settings domain.AppSettings) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.Save(&settings)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.saved = false
			return v, v.loadSettings()
		}
		v.err = nil
		v.saved = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < int(itemCount)-1 {
			v.selected++
		}
	case "enter", " ":
		return v, v.toggle(Item(v.selected))
	case "r":
		if v.settingsService != nil {
			v.settings = nil
			defaults := v.settingsService.GetDefaults()
			return v, v.saveAndShow(defaults)
		}
	}
	return v, nil
}

// toggle flips the selected setting and saves the result.
func (v *View) toggle(item Item) tea.Cmd {
	if v.settings == nil {
		return nil
	}
	next := *v.settings
	switch item {
	case ItemDefaultSort:
		if next.List.DefaultSort.SortBy == domain.SortByType {
			next.List.DefaultSort.SortBy = domain.SortByReceivedAt
		} else {
			next.List.DefaultSort.SortBy = domain.SortByType
		}
	case ItemSortDirection:
		next.List.DefaultSort.SortAscending = !next.List.DefaultSort.SortAscending
	case ItemExpandComments:
		next.List.ExpandComments = !next.List.ExpandComments
	default:
		return nil
	}
	return v.saveAndShow(next)
}

func (v *View) saveAndShow(next domain.AppSettings) tea.Cmd {
	v.settings = &next
	v.saved = false
	return v.saveSettings(next)
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.styles.Subtitle.Render("Document list defaults"))
	b.WriteString("\n\n")
	for i := Item(0); i < itemCount; i++ {
		label, value := v.describe(i)
		line := fmt.Sprintf("%-22s %s", label, value)
		if int(i) == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Defaults apply to cases without a saved list state."))
	b.WriteString("\n")
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	} else if v.saved {
		b.WriteString(v.styles.Success.Render("Saved"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) describe(item Item) (label, value string) {
	list := v.settings.List
	switch item {
	case ItemDefaultSort:
		value = "Receipt date"
		if list.DefaultSort.SortBy == domain.SortByType {
			value = "Document type"
		}
		return "Sort by", value
	case ItemSortDirection:
		value = "Descending"
		if list.DefaultSort.SortAscending {
			value = "Ascending"
		}
		return "Direction", value
	case ItemExpandComments:
		value = "Off"
		if list.ExpandComments {
			value = "On"
		}
		return "Expand all comments", value
	}
	return "", ""
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[enter] change  [r] reset defaults  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Settings returns the shown settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Selected returns the cursor position.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
