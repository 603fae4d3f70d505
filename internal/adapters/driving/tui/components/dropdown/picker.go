package dropdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

// Option is one checkable entry of a picker.
type Option struct {
	Name     string
	Label    string
	Selected bool
}

// Picker is the checklist shown in an open filter dropdown.
type Picker struct {
	filterType domain.FilterType
	options    []Option
	cursor     int
	styles     *styles.Styles
}

// NewPicker creates a picker for a filter type.
func NewPicker(s *styles.Styles, t domain.FilterType) *Picker {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Picker{filterType: t, styles: s}
}

// CategoryOptions lists the category vocabulary with the selection state
// of the criteria.
func CategoryOptions(c domain.FilterCriteria) []Option {
	opts := make([]Option, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		opts = append(opts, Option{
			Name:     string(cat),
			Label:    cat.Symbol() + " " + cat.Label(),
			Selected: c.IsSet(domain.FilterCategory, string(cat)),
		})
	}
	return opts
}

// TagOptions lists a tag vocabulary with the selection state of the
// criteria.
func TagOptions(tags []string, c domain.FilterCriteria) []Option {
	opts := make([]Option, 0, len(tags))
	for _, tag := range tags {
		opts = append(opts, Option{
			Name:     tag,
			Label:    tag,
			Selected: c.IsSet(domain.FilterTag, tag),
		})
	}
	return opts
}

// Type returns the filter type of the picker.
func (p *Picker) Type() domain.FilterType {
	return p.filterType
}

// SetOptions replaces the options, keeping the cursor in range.
func (p *Picker) SetOptions(opts []Option) {
	p.options = opts
	if p.cursor >= len(opts) {
		p.cursor = len(opts) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Options returns the current options.
func (p *Picker) Options() []Option {
	return p.options
}

// Cursor returns the index of the highlighted option.
func (p *Picker) Cursor() int {
	return p.cursor
}

// MoveUp moves the cursor to the previous option.
func (p *Picker) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves the cursor to the next option.
func (p *Picker) MoveDown() {
	if p.cursor < len(p.options)-1 {
		p.cursor++
	}
}

// Toggle returns the action flipping the highlighted option, or nil when
// the picker is empty.
func (p *Picker) Toggle() domain.Action {
	if p.cursor >= len(p.options) {
		return nil
	}
	opt := p.options[p.cursor]
	if p.filterType == domain.FilterTag {
		return domain.SetTagFilter{Tag: opt.Name, Selected: !opt.Selected}
	}
	return domain.SetCategoryFilter{Category: domain.Category(opt.Name), Selected: !opt.Selected}
}

// Clear returns the action deselecting every option of the picker's type.
func (p *Picker) Clear() domain.Action {
	return domain.ClearFilters{Type: p.filterType}
}

// View renders the bordered checklist.
func (p *Picker) View() string {
	var b strings.Builder
	if len(p.options) == 0 {
		b.WriteString(p.styles.Muted.Render(fmt.Sprintf("No %ss", p.filterType)))
	}
	for i, opt := range p.options {
		check := "[ ]"
		if opt.Selected {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, opt.Label)
		if i == p.cursor {
			line = p.styles.Selected.Render(line)
		} else {
			line = p.styles.Normal.Render(line)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}
	b.WriteString("\n")
	b.WriteString(p.styles.Help.Render("[space] toggle  [x] clear  [esc] close"))
	return p.styles.Dropdown.Render(b.String())
}

// Width returns the rendered width of the picker box.
func (p *Picker) Width() int {
	return lipgloss.Width(p.View())
}
