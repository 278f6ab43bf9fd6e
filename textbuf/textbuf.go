package textbuf

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// ChangeEvent describes a single content edit.
type ChangeEvent struct {
	// Range is the replaced span, in pre-edit coordinates.
	Range Range

	// Text is the inserted text, already normalized to the buffer's EOL.
	Text string
}

// Subscription is a handle to a registered change listener.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the listener. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

type listener struct {
	id uint64
	fn func(ChangeEvent)
}

// Buffer is an edit-optimized text buffer. Content is held as a piece
// table over an immutable original slice plus an append-only add slice;
// every line terminator is normalized to a single EOL at construction.
type Buffer struct {
	mu sync.RWMutex

	original []byte
	added    []byte
	pieces   []piece
	eol      string

	totalBytes    int
	totalRunes    int
	totalNewlines int

	disposed   bool
	listeners  []listener
	nextListID uint64
}

// New creates a buffer from text, normalizing line terminators per opts.
func New(text string, opts Options) *Buffer {
	eol := "\n"
	switch opts.EOL {
	case EOLCRLF:
		eol = "\r\n"
	case EOLAuto:
		eol = detectEOL(text)
	}

	b := &Buffer{eol: eol}
	norm := normalizeEOL(text, eol)
	if norm != "" {
		b.original = []byte(norm)
		b.pieces = []piece{makePiece(b.original, srcOriginal, 0, len(b.original))}
	}
	b.recount()
	return b
}

var placeholderBuffer = func() *Buffer {
	b := New("", Options{})
	b.Dispose()
	return b
}()

// Placeholder returns a shared empty buffer that is already disposed.
// Owners swap it in on disposal so stale references observe empty content
// instead of retaining a large live buffer.
func Placeholder() *Buffer {
	return placeholderBuffer
}

// EOL returns the buffer's configured line terminator.
func (b *Buffer) EOL() string {
	return b.eol
}

// Text returns the full content, using the buffer's EOL.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	sb.Grow(b.totalBytes)
	for _, p := range b.pieces {
		sb.Write(b.pieceBytes(p))
	}
	return sb.String()
}

// Len returns the total content length in runes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.totalRunes
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.totalNewlines + 1
}

// LineContent returns the content of a 1-based line, terminator excluded.
func (b *Buffer) LineContent(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, end, err := b.lineSpanLocked(line)
	if err != nil {
		return "", err
	}
	return string(b.bytesInLocked(start, end)), nil
}

// LineLength returns the rune length of a 1-based line, terminator excluded.
func (b *Buffer) LineLength(line int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, end, err := b.lineSpanLocked(line)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCount(b.bytesInLocked(start, end)), nil
}

// TextInRange returns the content covered by r.
func (b *Buffer) TextInRange(r Range) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, end, err := b.byteSpanLocked(r)
	if err != nil {
		return "", err
	}
	return string(b.bytesInLocked(start, end)), nil
}

// OffsetAt converts a position to an absolute rune offset.
func (b *Buffer) OffsetAt(pos Position) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	byteOff, err := b.byteForPositionLocked(pos)
	if err != nil {
		return 0, err
	}
	return b.runeOffsetForByteLocked(byteOff), nil
}

// PositionAt converts an absolute rune offset to a position. Offsets are
// clamped to the content bounds; an offset landing inside a CRLF pair
// snaps to the end of its line.
func (b *Buffer) PositionAt(offset int) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset > b.totalRunes {
		offset = b.totalRunes
	}

	byteOff := b.byteForRuneOffsetLocked(offset)
	line := b.newlinesBeforeLocked(byteOff) + 1
	start, end, _ := b.lineSpanLocked(line)
	col := utf8.RuneCount(b.bytesInLocked(start, min(byteOff, end))) + 1
	return Position{Line: line, Column: col}
}

// OnChange registers a listener invoked synchronously after every edit.
// On a disposed buffer the returned subscription is a no-op.
func (b *Buffer) OnChange(fn func(ChangeEvent)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return &Subscription{}
	}

	b.nextListID++
	id := b.nextListID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})

	return &Subscription{cancel: func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				break
			}
		}
	}}
}

// Dispose releases the buffer's content and listeners. Idempotent; reads
// after disposal observe empty content, mutations return ErrDisposed.
func (b *Buffer) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return
	}
	b.disposed = true
	b.pieces = nil
	b.original = nil
	b.added = nil
	b.listeners = nil
	b.recount()
}

// Disposed reports whether the buffer has been disposed.
func (b *Buffer) Disposed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.disposed
}
