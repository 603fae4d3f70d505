// Package cases provides the case picker view for the TUI.
package cases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

var errNoCaseService = errors.New("case service not available")

// View lists the imported claims folders.
type View struct {
	styles      *styles.Styles
	caseService driving.CaseService

	cases    []domain.Case
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new cases view.
func NewView(s *styles.Styles, caseService driving.CaseService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		caseService: caseService,
	}
}

// Init initialises the view and loads cases.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadCases()
}

func (v *View) loadCases() tea.Cmd {
	svc := v.caseService
	return func() tea.Msg {
		if svc == nil {
			return messages.CasesLoaded{Err: errNoCaseService}
		}
		cases, err := svc.List(context.Background())
		return messages.CasesLoaded{Cases: cases, Err: err}
	}
}

// Update handles messages for the cases view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CasesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.cases = msg.Cases
		v.err = nil
		if v.selected >= len(v.cases) {
			v.selected = max(len(v.cases)-1, 0)
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.cases)-1 {
			v.selected++
		}
	case "enter":
		if v.selected < len(v.cases) {
			id := v.cases[v.selected].ID
			return v, func() tea.Msg {
				return messages.CaseSelected{CaseID: id}
			}
		}
	case "r":
		v.loading = true
		return v, v.loadCases()
	}
	return v, nil
}

// View renders the cases view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Claims Folders"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading cases..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.cases) == 0:
		b.WriteString(v.styles.Muted.Render("No cases imported. Run 'reader import <manifest>' first."))
	default:
		for i := range v.cases {
			b.WriteString(v.renderCase(i, &v.cases[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] open  [r] reload  [esc] back  [q] quit"))
	return b.String()
}

// renderCase renders one line: > Veteran Name   case-id
func (v *View) renderCase(index int, c *domain.Case) string {
	name := c.VeteranName
	if name == "" {
		name = "(unnamed)"
	}
	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %-30s %s", name, c.ID))
	}
	return v.styles.Normal.Render("  ") +
		v.styles.Normal.Render(fmt.Sprintf("%-30s ", name)) +
		v.styles.Muted.Render(c.ID)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Cases returns the loaded cases.
func (v *View) Cases() []domain.Case {
	return v.cases
}

// SelectedIndex returns the cursor position.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
