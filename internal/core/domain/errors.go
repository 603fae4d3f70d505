package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// List State Errors.

	// ErrInvalidSortField indicates a sort key outside the sortable columns.
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrUnknownCategory indicates a category name outside the vocabulary.
	ErrUnknownCategory = errors.New("unknown category")
)
