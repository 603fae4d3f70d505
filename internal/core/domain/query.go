package domain

import "strings"

// ListQuery describes a document list request made without an interactive
// list, e.g. from the command line or an MCP tool call.
type ListQuery struct {
	// Categories selects category filters by name.
	Categories []string
	// Tags selects issue tag filters.
	Tags []string
	// Search is the free-text query.
	Search string
	// SortBy is a sort field or alias. Empty sorts by receipt date.
	SortBy string
	// Descending reverses the sort.
	Descending bool
	// ExpandComments lists the comments of every document.
	ExpandComments bool
}

// State builds the list state the query describes, starting from a fresh
// list. Unknown categories and sort fields are rejected.
func (q ListQuery) State() (ListState, error) {
	state := NewListState()

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = string(SortByReceivedAt)
	}
	field, err := ParseSortField(sortBy)
	if err != nil {
		return state, err
	}
	state.Criteria.Sort = Sort{SortBy: field, SortAscending: !q.Descending}

	for _, name := range q.Categories {
		c, err := ParseCategory(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return state, err
		}
		state = Reduce(state, SetCategoryFilter{Category: c, Selected: true})
	}
	for _, tag := range q.Tags {
		state = Reduce(state, SetTagFilter{Tag: tag, Selected: true})
	}
	if q.Search != "" {
		state = Reduce(state, SetSearch{Query: q.Search})
	}
	if q.ExpandComments {
		state = Reduce(state, ToggleExpandAll{})
	}
	return state, nil
}
