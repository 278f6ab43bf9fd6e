package textbuf

// Position identifies a point in a buffer by line and column.
// Both are 1-based; Column counts runes, and a column equal to the line
// length plus one addresses the point just past the last rune of the line.
type Position struct {
	Line   int
	Column int
}

// At creates a Position from a line and column.
func At(line, column int) Position {
	return Position{Line: line, Column: column}
}

// Before reports whether p is strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Range is a half-open span between two positions: it covers Start up to
// but not including End. A range with Start == End is empty.
type Range struct {
	Start Position
	End   Position
}

// Span creates a Range from start and end positions.
func Span(start, end Position) Range {
	return Range{Start: start, End: end}
}

// IsEmpty reports whether the range covers no content.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}
