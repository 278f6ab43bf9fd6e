package textbuf

import "unicode/utf8"

// pieceSrc selects which backing slice a piece references.
type pieceSrc int

const (
	srcOriginal pieceSrc = iota
	srcAdded
)

// piece references a contiguous run of bytes in one of the buffer's two
// backing slices. Rune and newline weights are computed once at creation
// so position queries can skip whole pieces without rescanning bytes.
type piece struct {
	src      pieceSrc
	off      int   // byte offset into the backing slice
	n        int   // byte length
	runes    int   // rune count
	newlines []int // offsets of '\n' bytes, relative to off
}

// makePiece scans the referenced bytes and fills in the cached weights.
func makePiece(backing []byte, src pieceSrc, off, n int) piece {
	p := piece{src: src, off: off, n: n}
	seg := backing[off : off+n]
	p.runes = utf8.RuneCount(seg)
	for i := 0; i < len(seg); i++ {
		if seg[i] == '\n' {
			p.newlines = append(p.newlines, i)
		}
	}
	return p
}

// backing returns the byte slice a piece source refers to.
func (b *Buffer) backing(src pieceSrc) []byte {
	if src == srcAdded {
		return b.added
	}
	return b.original
}

// pieceBytes returns the bytes a piece covers.
func (b *Buffer) pieceBytes(p piece) []byte {
	return b.backing(p.src)[p.off : p.off+p.n]
}

// cutPieces splits a piece list at the given byte offset (relative to the
// start of the list), returning independent left and right halves. A piece
// straddling the cut is split in two with weights recomputed for each half.
func (b *Buffer) cutPieces(pieces []piece, at int) (left, right []piece) {
	base := 0
	for i, p := range pieces {
		if at == base {
			return clonePieces(pieces[:i]), clonePieces(pieces[i:])
		}
		if at < base+p.n {
			k := at - base
			left = clonePieces(pieces[:i])
			left = append(left, makePiece(b.backing(p.src), p.src, p.off, k))
			right = []piece{makePiece(b.backing(p.src), p.src, p.off+k, p.n-k)}
			right = append(right, pieces[i+1:]...)
			return left, right
		}
		base += p.n
	}
	return clonePieces(pieces), nil
}

func clonePieces(pieces []piece) []piece {
	return append([]piece(nil), pieces...)
}

// recount recomputes the buffer totals from its piece list.
func (b *Buffer) recount() {
	b.totalBytes = 0
	b.totalRunes = 0
	b.totalNewlines = 0
	for _, p := range b.pieces {
		b.totalBytes += p.n
		b.totalRunes += p.runes
		b.totalNewlines += len(p.newlines)
	}
}
