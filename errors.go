// Package notebook models a single editable cell of a notebook document:
// its text content, language tag, metadata, and produced outputs. The text
// content is materialized lazily into an edit-optimized buffer (textbuf),
// and a memoized identity hash tracks the cell's semantically meaningful
// state across mutations.
package notebook

import "errors"

// Construction errors
var (
	// ErrNoLocation indicates that a cell was created without a location URI.
	ErrNoLocation = errors.New("no location URI provided")
)

// Output errors
var (
	// ErrInvalidSplice indicates a splice whose indices fall outside the
	// output list it was computed against.
	ErrInvalidSplice = errors.New("splice indices out of range")
)

// Model resolution errors
var (
	// ErrNoResolver indicates that the cell has no model-resolution service.
	ErrNoResolver = errors.New("no model resolver configured")

	// ErrModelNotFound indicates that no cell is registered under the URI.
	ErrModelNotFound = errors.New("text model not found")
)
