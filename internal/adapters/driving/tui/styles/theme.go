// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette of the reader.
type Theme struct {
	// Primary is the main accent colour, used for titles and selection.
	Primary lipgloss.Color

	// Secondary highlights active controls such as open filters.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Unread marks documents not yet opened.
	Unread lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning is used for the limited results alert.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Surface is the background of overlays and the status bar.
	Surface lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#0071BC"), // Blue
		Secondary:  lipgloss.Color("#02BFE7"), // Light blue
		Foreground: lipgloss.Color("#E8E8E8"), // Off white
		Muted:      lipgloss.Color("#8A8F98"), // Gray
		Unread:     lipgloss.Color("#FFFFFF"), // White
		Success:    lipgloss.Color("#2E8540"), // Green
		Warning:    lipgloss.Color("#FDB81E"), // Gold
		Error:      lipgloss.Color("#E31C3D"), // Red
		Border:     lipgloss.Color("#5B616B"), // Dark gray
		Surface:    lipgloss.Color("#212121"), // Near black
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style

	// TableHeader styles column headers of the document table.
	TableHeader lipgloss.Style

	// HeaderActive styles a header control that is open or in use.
	HeaderActive lipgloss.Style

	// Unread styles the cells of documents not yet opened.
	Unread lipgloss.Style

	// Read styles the cells of opened documents.
	Read lipgloss.Style

	// Comment styles the full-width comment rows.
	Comment lipgloss.Style

	// Alert styles the limited results banner.
	Alert lipgloss.Style

	// Highlight marks search matches inside table cells.
	Highlight lipgloss.Style

	// Dropdown styles the filter dropdown overlay.
	Dropdown lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Unread).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Surface).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Underline(true),

		HeaderActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Unread: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Unread),

		Read: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Comment: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Secondary),

		Alert: lipgloss.NewStyle().
			Foreground(theme.Surface).
			Background(theme.Warning).
			Padding(0, 1),

		Highlight: lipgloss.NewStyle().
			Foreground(theme.Surface).
			Background(theme.Warning),

		Dropdown: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Secondary).
			Background(theme.Surface).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Cell returns the cell style for a document depending on its read flag.
func (s *Styles) Cell(read bool) lipgloss.Style {
	if read {
		return s.Read
	}
	return s.Unread
}

// Row returns the style of a document row. The cursor row keeps the
// weight of its read state on the selection background.
func (s *Styles) Row(read, selected bool) lipgloss.Style {
	style := s.Cell(read)
	if !selected {
		return style
	}
	style = style.Background(s.theme.Primary)
	if read {
		style = style.Foreground(s.theme.Foreground)
	}
	return style
}
