package textbuf

// Replace deletes the content covered by r and inserts text at its start.
// Inserted text is normalized to the buffer's EOL. The edit is applied
// atomically; listeners are invoked synchronously after the buffer has
// been updated, and never with any lock held.
func (b *Buffer) Replace(r Range, text string) error {
	b.mu.Lock()

	if b.disposed {
		b.mu.Unlock()
		return ErrDisposed
	}

	start, end, err := b.byteSpanLocked(r)
	if err != nil {
		b.mu.Unlock()
		return err
	}

	norm := normalizeEOL(text, b.eol)

	left, rest := b.cutPieces(b.pieces, start)
	_, right := b.cutPieces(rest, end-start)

	if norm != "" {
		addOff := len(b.added)
		b.added = append(b.added, norm...)
		left = append(left, makePiece(b.added, srcAdded, addOff, len(norm)))
	}
	b.pieces = append(left, right...)
	b.recount()

	notify := make([]func(ChangeEvent), 0, len(b.listeners))
	for _, l := range b.listeners {
		notify = append(notify, l.fn)
	}
	b.mu.Unlock()

	ev := ChangeEvent{Range: r, Text: norm}
	for _, fn := range notify {
		fn(ev)
	}
	return nil
}

// Insert inserts text at a position without deleting anything.
func (b *Buffer) Insert(pos Position, text string) error {
	return b.Replace(Range{Start: pos, End: pos}, text)
}

// Delete removes the content covered by r.
func (b *Buffer) Delete(r Range) error {
	return b.Replace(r, "")
}
