package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := NewListState()
	before := s.Clone()

	_ = Reduce(s, SetCategoryFilter{Category: CategoryMedical, Selected: true})
	_ = Reduce(s, ToggleDropdown{Type: FilterTag})
	_ = Reduce(s, ToggleComments{DocumentID: 3})

	assert.Equal(t, before, s)
}

func TestReduce_Filters(t *testing.T) {
	s := NewListState()

	s = Reduce(s, SetCategoryFilter{Category: CategoryMedical, Selected: true})
	s = Reduce(s, SetTagFilter{Tag: "tinnitus", Selected: true})
	assert.True(t, s.Criteria.IsSet(FilterCategory, "medical"))
	assert.True(t, s.Criteria.IsSet(FilterTag, "tinnitus"))

	s = Reduce(s, ClearFilters{Type: FilterCategory})
	assert.False(t, s.Criteria.AnySet(FilterCategory))
	assert.True(t, s.Criteria.AnySet(FilterTag))

	s = Reduce(s, SetCategoryFilter{Category: CategoryOther, Selected: true})
	s = Reduce(s, ClearAllFilters{})
	assert.False(t, s.Criteria.AnySet(FilterCategory))
	assert.False(t, s.Criteria.AnySet(FilterTag))
}

func TestReduce_ClearFiltersUnknownType(t *testing.T) {
	s := Reduce(NewListState(), SetCategoryFilter{Category: CategoryMedical, Selected: true})
	s = Reduce(s, SetTagFilter{Tag: "tinnitus", Selected: true})

	got := Reduce(s, ClearFilters{Type: FilterType("bogus")})

	assert.True(t, got.Criteria.IsSet(FilterCategory, "medical"))
	assert.True(t, got.Criteria.IsSet(FilterTag, "tinnitus"))
	assert.Equal(t, s, got)
}

func TestReduce_Search(t *testing.T) {
	s := Reduce(NewListState(), SetSearch{Query: "nod"})
	assert.Equal(t, "nod", s.Criteria.SearchQuery)

	s = Reduce(s, ClearSearch{})
	assert.Empty(t, s.Criteria.SearchQuery)
}

func TestReduce_ChangeSort(t *testing.T) {
	s := Reduce(NewListState(), ChangeSort{Field: SortByType})
	assert.Equal(t, Sort{SortBy: SortByType, SortAscending: true}, s.Criteria.Sort)

	s = Reduce(s, ChangeSort{Field: SortByType})
	assert.False(t, s.Criteria.Sort.SortAscending)

	unchanged := Reduce(s, ChangeSort{Field: "tags"})
	assert.Equal(t, s.Criteria.Sort, unchanged.Criteria.Sort)
}

func TestReduce_DropdownsAreIndependent(t *testing.T) {
	s := Reduce(NewListState(), ToggleDropdown{Type: FilterCategory})
	s = Reduce(s, ToggleDropdown{Type: FilterTag})

	assert.True(t, s.IsDropdownOpen(FilterCategory))
	assert.True(t, s.IsDropdownOpen(FilterTag))

	s = Reduce(s, ToggleDropdown{Type: FilterCategory})
	assert.False(t, s.IsDropdownOpen(FilterCategory))
	assert.True(t, s.IsDropdownOpen(FilterTag))
}

func TestReduce_Comments(t *testing.T) {
	s := Reduce(NewListState(), ToggleComments{DocumentID: 1})
	assert.True(t, s.CommentsListed(1))
	assert.False(t, s.CommentsListed(2))

	s = Reduce(s, ToggleExpandAll{})
	assert.True(t, s.CommentsListed(2))

	s = Reduce(s, ToggleComments{DocumentID: 2})
	assert.False(t, s.CommentsListed(2), "expand all is overridden per document")

	s = Reduce(s, ToggleExpandAll{})
	assert.False(t, s.CommentsListed(1))
	assert.False(t, s.CommentsListed(2))
}

func TestReduce_ScrollAndSelection(t *testing.T) {
	s := Reduce(NewListState(), SetScrollPosition{ScrollTop: 12})
	s = Reduce(s, SelectDocument{DocumentID: 7})
	assert.Equal(t, 12, s.ScrollTop)
	assert.Equal(t, int64(7), s.LastReadDocID)

	s = Reduce(s, SetScrollPosition{ScrollTop: -3})
	assert.Equal(t, 0, s.ScrollTop)
}

func TestReduce_ResetList(t *testing.T) {
	s := NewListState()
	s = Reduce(s, SetCategoryFilter{Category: CategoryMedical, Selected: true})
	s = Reduce(s, SetSearch{Query: "x"})
	s = Reduce(s, ChangeSort{Field: SortByType})
	s = Reduce(s, ToggleDropdown{Type: FilterTag})
	s = Reduce(s, ToggleExpandAll{})
	s = Reduce(s, SetScrollPosition{ScrollTop: 4})
	s = Reduce(s, SelectDocument{DocumentID: 9})

	reset := Reduce(s, ResetList{})

	require.Equal(t, DefaultSort(), reset.Criteria.Sort)
	assert.False(t, reset.Criteria.AnySet(FilterCategory))
	assert.Empty(t, reset.Criteria.SearchQuery)
	assert.False(t, reset.IsDropdownOpen(FilterTag))
	assert.False(t, reset.ExpandAll)
	assert.Equal(t, 4, reset.ScrollTop)
	assert.Equal(t, int64(9), reset.LastReadDocID)
}

func TestReduce_NilAction(t *testing.T) {
	s := Reduce(NewListState(), SetSearch{Query: "q"})
	assert.Equal(t, s, Reduce(s, nil))
}
