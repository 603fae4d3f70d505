// Package menu is the start screen of the reader.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/styles"
)

// Item is one entry of the menu. Key is a single-letter shortcut.
type Item struct {
	Label string
	Key   string
	View  messages.ViewType
	Quit  bool
}

// View lists the top-level screens. Navigation wraps at both ends.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Claims Folders", Key: "c", View: messages.ViewCases},
			{Label: "Settings", Key: "s", View: messages.ViewSettings},
			{Label: "Help", Key: "?", View: messages.ViewHelp},
			{Label: "Quit", Key: "q", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "up", "k":
			v.selected = (v.selected + len(v.items) - 1) % len(v.items)
		case "down", "j", "tab":
			v.selected = (v.selected + 1) % len(v.items)
		case "enter":
			return v, v.choose(v.selected)
		default:
			for i, item := range v.items {
				if item.Key == key {
					v.selected = i
					return v, v.choose(i)
				}
			}
		}
	}

	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Reader"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Claims folder document reader"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := fmt.Sprintf("%-16s %s", item.Label, v.styles.Muted.Render("["+item.Key+"]"))
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(item.Label) + label[len(item.Label):])
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label) + label[len(item.Label):])
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [letter] Jump"))
	return b.String()
}

func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the index of the highlighted item.
func (v *View) Selected() int {
	return v.selected
}

func (v *View) Items() []Item {
	return v.items
}
