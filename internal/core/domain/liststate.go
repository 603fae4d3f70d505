package domain

// ListState is the single state tree of the document list. It is owned by
// the list view and changed only through Reduce.
type ListState struct {
	// Criteria is the filter and sort state.
	Criteria FilterCriteria

	// Dropdowns records which filter dropdowns are open.
	Dropdowns map[FilterType]bool

	// ExpandAll lists the comments of every document.
	ExpandAll bool

	// CommentsOpened overrides ExpandAll for individual documents.
	CommentsOpened map[int64]bool

	// ScrollTop is the index of the first visible row.
	ScrollTop int

	// LastReadDocID is the most recently opened document, 0 if none.
	LastReadDocID int64
}

// NewListState returns the state of a freshly reset list.
func NewListState() ListState {
	return ListState{
		Criteria:       NewFilterCriteria(),
		Dropdowns:      map[FilterType]bool{},
		CommentsOpened: map[int64]bool{},
	}
}

// Clone returns a deep copy of the state.
func (s ListState) Clone() ListState {
	out := s
	out.Criteria = s.Criteria.Clone()
	out.Dropdowns = make(map[FilterType]bool, len(s.Dropdowns))
	for k, v := range s.Dropdowns {
		out.Dropdowns[k] = v
	}
	out.CommentsOpened = make(map[int64]bool, len(s.CommentsOpened))
	for k, v := range s.CommentsOpened {
		out.CommentsOpened[k] = v
	}
	return out
}

// IsDropdownOpen reports whether the dropdown of a filter type is open.
func (s ListState) IsDropdownOpen(t FilterType) bool {
	return s.Dropdowns[t]
}

// CommentsListed reports whether the comment sub-row of a document is shown.
func (s ListState) CommentsListed(docID int64) bool {
	if v, ok := s.CommentsOpened[docID]; ok {
		return v
	}
	return s.ExpandAll
}

// Action is a state transition request dispatched to Reduce.
type Action interface {
	apply(s ListState) ListState
}

// SetCategoryFilter selects or deselects a category.
type SetCategoryFilter struct {
	Category Category
	Selected bool
}

func (a SetCategoryFilter) apply(s ListState) ListState {
	s.Criteria = s.Criteria.SetFilter(FilterCategory, string(a.Category), a.Selected)
	return s
}

// SetTagFilter selects or deselects a tag.
type SetTagFilter struct {
	Tag      string
	Selected bool
}

func (a SetTagFilter) apply(s ListState) ListState {
	s.Criteria = s.Criteria.SetFilter(FilterTag, a.Tag, a.Selected)
	return s
}

// ClearFilters deselects every filter of one type.
type ClearFilters struct {
	Type FilterType
}

func (a ClearFilters) apply(s ListState) ListState {
	if !a.Type.IsValid() {
		return s
	}
	s.Criteria = s.Criteria.ClearAll(a.Type)
	return s
}

// ClearAllFilters deselects every category and tag filter.
type ClearAllFilters struct{}

func (ClearAllFilters) apply(s ListState) ListState {
	s.Criteria = s.Criteria.ClearAll(FilterCategory).ClearAll(FilterTag)
	return s
}

// SetSearch replaces the search query.
type SetSearch struct {
	Query string
}

func (a SetSearch) apply(s ListState) ListState {
	s.Criteria = s.Criteria.SetSearch(a.Query)
	return s
}

// ClearSearch empties the search query.
type ClearSearch struct{}

func (ClearSearch) apply(s ListState) ListState {
	s.Criteria = s.Criteria.SetSearch("")
	return s
}

// ChangeSort requests sorting by a field.
type ChangeSort struct {
	Field SortField
}

func (a ChangeSort) apply(s ListState) ListState {
	if !a.Field.IsValid() {
		return s
	}
	s.Criteria = s.Criteria.ChangeSort(a.Field)
	return s
}

// ToggleDropdown opens or closes the dropdown of one filter type.
// The other dropdown is left as it is.
type ToggleDropdown struct {
	Type FilterType
}

func (a ToggleDropdown) apply(s ListState) ListState {
	if !a.Type.IsValid() {
		return s
	}
	s.Dropdowns[a.Type] = !s.Dropdowns[a.Type]
	return s
}

// ToggleExpandAll switches between listing all comments and none.
// Per-document overrides are dropped.
type ToggleExpandAll struct{}

func (ToggleExpandAll) apply(s ListState) ListState {
	s.ExpandAll = !s.ExpandAll
	s.CommentsOpened = map[int64]bool{}
	return s
}

// ToggleComments shows or hides the comment sub-row of one document.
type ToggleComments struct {
	DocumentID int64
}

func (a ToggleComments) apply(s ListState) ListState {
	s.CommentsOpened[a.DocumentID] = !s.CommentsListed(a.DocumentID)
	return s
}

// SetScrollPosition records the first visible row.
type SetScrollPosition struct {
	ScrollTop int
}

func (a SetScrollPosition) apply(s ListState) ListState {
	if a.ScrollTop < 0 {
		a.ScrollTop = 0
	}
	s.ScrollTop = a.ScrollTop
	return s
}

// SelectDocument records a document as the most recently read.
type SelectDocument struct {
	DocumentID int64
}

func (a SelectDocument) apply(s ListState) ListState {
	s.LastReadDocID = a.DocumentID
	return s
}

// ResetList restores every filter, the sort, dropdowns and expansion to
// defaults. Scroll position and last read document survive a reset.
type ResetList struct{}

func (ResetList) apply(s ListState) ListState {
	fresh := NewListState()
	fresh.ScrollTop = s.ScrollTop
	fresh.LastReadDocID = s.LastReadDocID
	return fresh
}

// Reduce applies an action and returns the new state. The input state is
// never modified. A nil action returns an unchanged copy.
func Reduce(s ListState, a Action) ListState {
	next := s.Clone()
	if a == nil {
		return next
	}
	return a.apply(next)
}
