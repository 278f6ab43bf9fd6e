// Package textbuf provides an indexed, piece-table text buffer with
// end-of-line normalization, line/offset queries, range edits, and
// synchronous content-change notification.
package textbuf

import "errors"

var (
	// ErrInvalidPosition indicates that a position is out of bounds.
	ErrInvalidPosition = errors.New("position out of bounds")

	// ErrInvalidRange indicates that a range's end precedes its start.
	ErrInvalidRange = errors.New("range end precedes start")

	// ErrDisposed indicates a mutation was attempted on a disposed buffer.
	ErrDisposed = errors.New("buffer is disposed")
)
