// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// PageUp and PageDown scroll the document list by a screen.
	PageUp   key.Binding
	PageDown key.Binding

	// Search focuses the list search bar.
	Search key.Binding

	// CategoryFilter toggles the category dropdown.
	CategoryFilter key.Binding

	// TagFilter toggles the issue tags dropdown.
	TagFilter key.Binding

	// SortDate sorts by receipt date, toggling direction when active.
	SortDate key.Binding

	// SortType sorts by document type, toggling direction when active.
	SortType key.Binding

	// ExpandAll switches between listing every comment and none.
	ExpandAll key.Binding

	// ToggleComments shows or hides the comments of the selected document.
	ToggleComments key.Binding

	// ClearFilters deselects every category and tag filter.
	ClearFilters key.Binding

	// AddComment starts a new comment in the document view.
	AddComment key.Binding

	// DeleteComment removes the selected comment.
	DeleteComment key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CategoryFilter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "categories"),
		),
		TagFilter: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "issue tags"),
		),
		SortDate: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by date"),
		),
		SortType: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "sort by type"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand/collapse all"),
		),
		ToggleComments: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "comments"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		AddComment: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add comment"),
		),
		DeleteComment: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete comment"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ListHelp returns keybindings for the document list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{
		k.Select, k.ToggleComments, k.CategoryFilter, k.TagFilter,
		k.SortDate, k.SortType, k.Search, k.ExpandAll, k.ClearFilters, k.Back,
	}
}

// DocumentHelp returns keybindings for the document view.
func (k *KeyMap) DocumentHelp() []key.Binding {
	return []key.Binding{k.Up, k.AddComment, k.DeleteComment, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Select},
		{k.CategoryFilter, k.TagFilter, k.ClearFilters, k.Search},
		{k.SortDate, k.SortType, k.ExpandAll, k.ToggleComments},
		{k.AddComment, k.DeleteComment},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
