package domain

import "time"

// ViewState is the persisted part of a case's list state. It is saved
// when the list is left and restored when the case is opened again.
type ViewState struct {
	CaseID        string
	Criteria      FilterCriteria
	ExpandAll     bool
	ScrollTop     int
	LastReadDocID int64
	UpdatedAt     time.Time
}

// ViewStateFrom extracts the persisted subset of a list state.
func ViewStateFrom(caseID string, s ListState) ViewState {
	return ViewState{
		CaseID:        caseID,
		Criteria:      s.Criteria.Clone(),
		ExpandAll:     s.ExpandAll,
		ScrollTop:     s.ScrollTop,
		LastReadDocID: s.LastReadDocID,
	}
}

// ListState rebuilds a list state from the saved view state. Dropdowns
// always start closed.
func (v ViewState) ListState() ListState {
	state := NewListState()
	state.Criteria = v.Criteria.Clone()
	if !state.Criteria.Sort.SortBy.IsValid() {
		state.Criteria.Sort = DefaultSort()
	}
	state.ExpandAll = v.ExpandAll
	state.ScrollTop = v.ScrollTop
	state.LastReadDocID = v.LastReadDocID
	return state
}
