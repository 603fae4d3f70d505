// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateSaved   State = "saved"
)

// Mode selects which key hints are shown.
type Mode string

const (
	ModeList     Mode = "list"
	ModeDocument Mode = "document"
	ModeShort    Mode = "short"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	mode    Mode
	message string
	shown   int
	total   int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		mode:   ModeShort,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// The bar style pads one cell on each side.
	avail := s.width - 2
	padding := avail - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		right = ansi.Truncate(right, max(avail-lipgloss.Width(left)-1, 0), "…")
		padding = max(avail-lipgloss.Width(left)-lipgloss.Width(right), 1)
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateSaved:
		if s.message != "" {
			return s.styles.Success.Render(s.message)
		}
		return s.styles.Success.Render("Saved")
	case StateReady:
		if s.total > 0 {
			return s.styles.Normal.Render(fmt.Sprintf("%d of %d documents", s.shown, s.total))
		}
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints for the current mode.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.mode {
	case ModeList:
		bindings = s.keymap.ListHelp()
	case ModeDocument:
		bindings = s.keymap.DocumentHelp()
	case ModeShort:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMode sets which key hints are shown.
func (s *Bar) SetMode(mode Mode) {
	s.mode = mode
}

// Mode returns the current hint mode.
func (s *Bar) Mode() Mode {
	return s.mode
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetError switches to the error state with the error's message.
func (s *Bar) SetError(err error) {
	if err == nil {
		s.Clear()
		return
	}
	s.state = StateError
	s.message = err.Error()
}

// SetCounts sets how many documents are shown out of the total.
func (s *Bar) SetCounts(shown, total int) {
	s.shown = shown
	s.total = total
}

// Counts returns the shown and total document counts.
func (s *Bar) Counts() (shown, total int) {
	return s.shown, s.total
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar state and message. Counts and mode stay.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
