package textbuf

import "unicode/utf8"

// Internal navigation helpers. All assume the caller holds at least a read
// lock and operate on byte offsets; public APIs convert to runes at the edge.

// bytesInLocked collects the bytes in the global range [from, to).
func (b *Buffer) bytesInLocked(from, to int) []byte {
	if to <= from {
		return nil
	}
	out := make([]byte, 0, to-from)
	base := 0
	for _, p := range b.pieces {
		if base >= to {
			break
		}
		pEnd := base + p.n
		if pEnd > from {
			s := max(from, base)
			e := min(to, pEnd)
			out = append(out, b.pieceBytes(p)[s-base:e-base]...)
		}
		base = pEnd
	}
	return out
}

// newlineOffsetLocked returns the global byte offset of the k-th newline
// (1-based). The caller guarantees 1 <= k <= totalNewlines.
func (b *Buffer) newlineOffsetLocked(k int) int {
	seen := 0
	base := 0
	for _, p := range b.pieces {
		if seen+len(p.newlines) >= k {
			return base + p.newlines[k-seen-1]
		}
		seen += len(p.newlines)
		base += p.n
	}
	return b.totalBytes
}

// newlinesBeforeLocked counts newlines strictly before the global byte offset.
func (b *Buffer) newlinesBeforeLocked(byteOff int) int {
	count := 0
	base := 0
	for _, p := range b.pieces {
		if base >= byteOff {
			break
		}
		for _, nl := range p.newlines {
			if base+nl >= byteOff {
				return count
			}
			count++
		}
		base += p.n
	}
	return count
}

// lineSpanLocked returns the byte range [start, end) of a line's content,
// terminator excluded.
func (b *Buffer) lineSpanLocked(line int) (start, end int, err error) {
	lineCount := b.totalNewlines + 1
	if line < 1 || line > lineCount {
		return 0, 0, ErrInvalidPosition
	}

	if line > 1 {
		start = b.newlineOffsetLocked(line-1) + 1
	}
	if line <= b.totalNewlines {
		// Content ends before the terminator; with CRLF the '\r'
		// precedes the '\n' the index tracks.
		end = b.newlineOffsetLocked(line) - (len(b.eol) - 1)
	} else {
		end = b.totalBytes
	}
	return start, end, nil
}

// byteForPositionLocked converts a position to a global byte offset.
func (b *Buffer) byteForPositionLocked(pos Position) (int, error) {
	start, end, err := b.lineSpanLocked(pos.Line)
	if err != nil {
		return 0, err
	}
	if pos.Column < 1 {
		return 0, ErrInvalidPosition
	}

	seg := b.bytesInLocked(start, end)
	col := 1
	off := 0
	for off < len(seg) {
		if col == pos.Column {
			return start + off, nil
		}
		_, size := utf8.DecodeRune(seg[off:])
		off += size
		col++
	}
	if col == pos.Column {
		return start + off, nil
	}
	return 0, ErrInvalidPosition
}

// byteSpanLocked converts a range to a global byte span.
func (b *Buffer) byteSpanLocked(r Range) (start, end int, err error) {
	start, err = b.byteForPositionLocked(r.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err = b.byteForPositionLocked(r.End)
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, ErrInvalidRange
	}
	return start, end, nil
}

// runeOffsetForByteLocked converts a global byte offset to a rune offset.
func (b *Buffer) runeOffsetForByteLocked(byteOff int) int {
	runes := 0
	base := 0
	for _, p := range b.pieces {
		if base+p.n <= byteOff {
			runes += p.runes
			base += p.n
			continue
		}
		runes += utf8.RuneCount(b.pieceBytes(p)[:byteOff-base])
		break
	}
	return runes
}

// byteForRuneOffsetLocked converts a global rune offset to a byte offset.
// The caller guarantees 0 <= runeOff <= totalRunes.
func (b *Buffer) byteForRuneOffsetLocked(runeOff int) int {
	base := 0
	for _, p := range b.pieces {
		if runeOff >= p.runes {
			runeOff -= p.runes
			base += p.n
			continue
		}
		seg := b.pieceBytes(p)
		off := 0
		for runeOff > 0 {
			_, size := utf8.DecodeRune(seg[off:])
			off += size
			runeOff--
		}
		return base + off
	}
	return base
}
