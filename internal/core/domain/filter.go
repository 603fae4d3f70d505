package domain

import (
	"fmt"
	"sort"
)

// FilterType identifies one of the two filter dimensions of the list.
type FilterType string

// Available filter types.
const (
	FilterCategory FilterType = "category"
	FilterTag      FilterType = "tag"
)

// FilterTypes lists the filter types in header order.
var FilterTypes = []FilterType{FilterCategory, FilterTag}

// IsValid returns true if the filter type is recognised.
func (t FilterType) IsValid() bool {
	return t == FilterCategory || t == FilterTag
}

// String returns the string representation.
func (t FilterType) String() string {
	return string(t)
}

// SortField is a sortable document field.
type SortField string

// Sortable fields.
const (
	SortByReceivedAt SortField = "receivedAt"
	SortByType       SortField = "type"
)

// IsValid returns true if the field is sortable.
func (f SortField) IsValid() bool {
	return f == SortByReceivedAt || f == SortByType
}

// String returns the string representation.
func (f SortField) String() string {
	return string(f)
}

// ParseSortField validates a sort key. It accepts the field names and the
// CLI aliases "date" and "received".
func ParseSortField(s string) (SortField, error) {
	switch s {
	case "receivedAt", "date", "received":
		return SortByReceivedAt, nil
	case "type":
		return SortByType, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortField, s)
	}
}

// Sort is the active sort specification. Exactly one field is active.
type Sort struct {
	SortBy        SortField
	SortAscending bool
}

// DefaultSort returns the sort used on a fresh list.
func DefaultSort() Sort {
	return Sort{SortBy: SortByReceivedAt, SortAscending: true}
}

// FilterCriteria governs which documents are shown and in what order.
// A name missing from Category or Tag is equivalent to false.
type FilterCriteria struct {
	Category    map[string]bool
	Tag         map[string]bool
	SearchQuery string
	Sort        Sort
}

// NewFilterCriteria returns empty criteria with the default sort.
func NewFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Category: map[string]bool{},
		Tag:      map[string]bool{},
		Sort:     DefaultSort(),
	}
}

// flags returns the map for a filter type.
// flags returns the map of one filter type, or nil for an unknown type.
func (c FilterCriteria) flags(t FilterType) map[string]bool {
	switch t {
	case FilterCategory:
		return c.Category
	case FilterTag:
		return c.Tag
	}
	return nil
}

// IsSet reports whether the named filter is selected.
func (c FilterCriteria) IsSet(t FilterType, name string) bool {
	return c.flags(t)[name]
}

// AnySet reports whether any filter of the given type is selected.
func (c FilterCriteria) AnySet(t FilterType) bool {
	for _, v := range c.flags(t) {
		if v {
			return true
		}
	}
	return false
}

// Selected returns the selected names of a filter type, sorted.
func (c FilterCriteria) Selected(t FilterType) []string {
	var names []string
	for name, v := range c.flags(t) {
		if v {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the criteria.
func (c FilterCriteria) Clone() FilterCriteria {
	out := c
	out.Category = copyFlags(c.Category)
	out.Tag = copyFlags(c.Tag)
	return out
}

// SetFilter returns a copy with the named flag set to exactly selected.
// Calling it twice with the same arguments yields the same criteria. An
// unknown filter type leaves the criteria unchanged.
func (c FilterCriteria) SetFilter(t FilterType, name string, selected bool) FilterCriteria {
	out := c.Clone()
	if m := out.flags(t); m != nil {
		m[name] = selected
	}
	return out
}

// ClearAll returns a copy where every true flag of the given type is
// false. Flags of the other type are untouched, and an unknown type
// changes nothing.
func (c FilterCriteria) ClearAll(t FilterType) FilterCriteria {
	out := c.Clone()
	m := out.flags(t)
	for name, v := range m {
		if v {
			m[name] = false
		}
	}
	return out
}

// SetSearch returns a copy with the search query replaced.
func (c FilterCriteria) SetSearch(query string) FilterCriteria {
	out := c.Clone()
	out.SearchQuery = query
	return out
}

// ChangeSort returns a copy sorted by field. Requesting the active field
// toggles the direction; any other field starts ascending.
func (c FilterCriteria) ChangeSort(field SortField) FilterCriteria {
	out := c.Clone()
	if c.Sort.SortBy == field {
		out.Sort.SortAscending = !c.Sort.SortAscending
	} else {
		out.Sort = Sort{SortBy: field, SortAscending: true}
	}
	return out
}

// ActiveFilterKinds names the filter dimensions that currently limit the
// list, e.g. ["categories", "tags"].
func (c FilterCriteria) ActiveFilterKinds() []string {
	var kinds []string
	if c.AnySet(FilterCategory) {
		kinds = append(kinds, "categories")
	}
	if c.AnySet(FilterTag) {
		kinds = append(kinds, "tags")
	}
	return kinds
}

func copyFlags(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
