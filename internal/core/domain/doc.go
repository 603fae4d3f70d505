// Package domain defines the core business entities for the claims-folder reader.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Case: A claims folder owned by a veteran
//   - Document: A case record shown as one row of the document list
//   - Annotation: A user comment attached to a page of a document
//   - FilterCriteria: The category/tag/search/sort state of the list
//   - ListState: The single state tree of the document list view
//   - Row: A projected table row (document or comment sub-row)
//
// The list state is changed only through the pure transition functions in
// this package (SetFilter, ClearAll, ChangeSort, Reduce). None of them
// mutate their receiver or arguments.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
