package domain

import "fmt"

// Category is a document category name.
type Category string

// Recognised document categories.
const (
	CategoryProcedural Category = "procedural"
	CategoryMedical    Category = "medical"
	CategoryOther      Category = "other"
)

// Categories is the fixed category vocabulary in display order.
var Categories = []Category{CategoryProcedural, CategoryMedical, CategoryOther}

// IsValid returns true if the category is part of the vocabulary.
func (c Category) IsValid() bool {
	switch c {
	case CategoryProcedural, CategoryMedical, CategoryOther:
		return true
	default:
		return false
	}
}

// Label returns the human-readable label.
func (c Category) Label() string {
	switch c {
	case CategoryProcedural:
		return "Procedural"
	case CategoryMedical:
		return "Medical"
	case CategoryOther:
		return "Other Evidence"
	default:
		return string(c)
	}
}

// Symbol returns the single-cell icon used in the categories column.
func (c Category) Symbol() string {
	switch c {
	case CategoryProcedural:
		return "P"
	case CategoryMedical:
		return "M"
	case CategoryOther:
		return "O"
	default:
		return "?"
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// CategorySet holds the category flags of a document.
type CategorySet struct {
	Procedural bool
	Medical    bool
	Other      bool
}

// Has reports whether the flag for the category is set.
func (s CategorySet) Has(c Category) bool {
	switch c {
	case CategoryProcedural:
		return s.Procedural
	case CategoryMedical:
		return s.Medical
	case CategoryOther:
		return s.Other
	default:
		return false
	}
}

// With returns a copy with the flag for the category set to v.
func (s CategorySet) With(c Category, v bool) CategorySet {
	switch c {
	case CategoryProcedural:
		s.Procedural = v
	case CategoryMedical:
		s.Medical = v
	case CategoryOther:
		s.Other = v
	}
	return s
}

// List returns the set categories in vocabulary order.
func (s CategorySet) List() []Category {
	var result []Category
	for _, c := range Categories {
		if s.Has(c) {
			result = append(result, c)
		}
	}
	return result
}
