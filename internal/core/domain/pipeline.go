package domain

import (
	"sort"
	"strings"
)

// ApplyCriteria filters and sorts the documents of a case according to
// the list state and sets ListComments on the returned copies. The input
// slice is not modified.
//
// Category and tag filters each keep documents matching any selected name;
// the two are combined with AND. The search query matches, case
// insensitively, the type, receipt date, tags, category labels and comment
// text. A document that matches only through a comment has its comments
// listed.
func ApplyCriteria(docs []Document, annotations map[int64][]Annotation, state ListState) []Document {
	criteria := state.Criteria
	query := strings.ToLower(strings.TrimSpace(criteria.SearchQuery))
	categoryFilter := criteria.AnySet(FilterCategory)
	tagFilter := criteria.AnySet(FilterTag)

	result := make([]Document, 0, len(docs))
	for i := range docs {
		doc := docs[i]
		doc.Tags = append([]string(nil), docs[i].Tags...)

		if categoryFilter && !matchesCategories(&doc, criteria) {
			continue
		}
		if tagFilter && !matchesTags(&doc, criteria) {
			continue
		}

		doc.ListComments = state.CommentsListed(doc.ID)
		if query != "" {
			fieldMatch := matchesFields(&doc, query)
			commentMatch := matchesComments(annotations[doc.ID], query)
			if !fieldMatch && !commentMatch {
				continue
			}
			if commentMatch {
				doc.ListComments = true
			}
		}

		result = append(result, doc)
	}

	SortDocuments(result, criteria.Sort)
	return result
}

// SortDocuments sorts docs in place by the given sort. Ties are broken by
// ascending id so the order is total.
func SortDocuments(docs []Document, s Sort) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := &docs[i], &docs[j]
		var cmp int
		switch s.SortBy {
		case SortByType:
			cmp = strings.Compare(strings.ToLower(a.Type), strings.ToLower(b.Type))
		default:
			cmp = a.ReceivedAt.Compare(b.ReceivedAt)
		}
		if cmp == 0 {
			return a.ID < b.ID
		}
		if s.SortAscending {
			return cmp < 0
		}
		return cmp > 0
	})
}

// TagVocabulary returns the distinct tags of the documents, sorted.
func TagVocabulary(docs []Document) []string {
	seen := make(map[string]struct{})
	var tags []string
	for i := range docs {
		for _, t := range docs[i].Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

func matchesCategories(doc *Document, c FilterCriteria) bool {
	for _, cat := range Categories {
		if c.IsSet(FilterCategory, string(cat)) && doc.Categories.Has(cat) {
			return true
		}
	}
	return false
}

func matchesTags(doc *Document, c FilterCriteria) bool {
	for _, t := range doc.Tags {
		if c.IsSet(FilterTag, t) {
			return true
		}
	}
	return false
}

func matchesFields(doc *Document, query string) bool {
	if strings.Contains(strings.ToLower(doc.Type), query) {
		return true
	}
	if strings.Contains(doc.FormattedReceivedAt(), query) {
		return true
	}
	for _, t := range doc.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	for _, cat := range doc.Categories.List() {
		if strings.Contains(strings.ToLower(cat.Label()), query) {
			return true
		}
	}
	return false
}

func matchesComments(annotations []Annotation, query string) bool {
	for i := range annotations {
		if strings.Contains(strings.ToLower(annotations[i].Comment), query) {
			return true
		}
	}
	return false
}
