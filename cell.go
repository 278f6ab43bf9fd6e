package notebook

import (
	"context"

	"github.com/phroun/notebook/textbuf"
)

// CellKind distinguishes executable code cells from narrative content.
type CellKind int

const (
	// MarkupCell holds narrative content (markdown and the like).
	MarkupCell CellKind = iota + 1

	// CodeCell holds executable source.
	CodeCell
)

// String returns a human-readable name for the kind.
func (k CellKind) String() string {
	switch k {
	case MarkupCell:
		return "markup"
	case CodeCell:
		return "code"
	}
	return "unknown"
}

// CellOptions configures cell construction.
type CellOptions struct {
	// URI is the cell's stable location identifier. Required.
	URI string

	// Handle is a numeric identifier unique within the owning document.
	Handle int64

	// Source is the raw text content the buffer is built from.
	Source string

	// Language is the cell's language tag.
	Language string

	// Kind defaults to CodeCell when unset.
	Kind CellKind

	// Outputs are the initial output records.
	Outputs []OutputData

	// Metadata is the initial metadata record. Optional.
	Metadata *CellMetadata

	// Transient marks inputs excluded from identity hashing.
	Transient TransientOptions

	// Resolver is the host's model-resolution service. Optional; without
	// one, ResolveTextModelRef returns ErrNoResolver.
	Resolver ModelResolver
}

// Cell models one editable unit of a notebook document. It owns its text
// buffer, output list, and metadata record exclusively; the host is
// expected to serialize access to a given cell. Mutations deliver change
// notifications synchronously on the calling goroutine.
type Cell struct {
	uri    string
	handle int64
	kind   CellKind

	// source is authoritative only until the buffer is materialized.
	source   string
	language string
	metadata CellMetadata
	outputs  []*Output

	transientMeta    map[string]struct{}
	transientOutputs bool

	resolver ModelResolver

	buffer    *textbuf.Buffer
	bufferSub *textbuf.Subscription

	hash      uint64
	hashValid bool
	disposed  bool

	contentChanged  emitter[struct{}]
	metadataChanged emitter[struct{}]
	languageChanged emitter[string]
	outputsChanged  emitter[[]OutputSplice]
}

// NewCell creates a cell content model from its construction inputs.
// Outputs supplied without an identifier receive a freshly generated one.
func NewCell(opts CellOptions) (*Cell, error) {
	if opts.URI == "" {
		return nil, ErrNoLocation
	}

	kind := opts.Kind
	if kind == 0 {
		kind = CodeCell
	}

	c := &Cell{
		uri:              opts.URI,
		handle:           opts.Handle,
		kind:             kind,
		source:           opts.Source,
		language:         opts.Language,
		outputs:          attachOutputs(opts.Outputs),
		transientOutputs: opts.Transient.TransientOutputs,
		resolver:         opts.Resolver,
	}
	if opts.Metadata != nil {
		c.metadata = opts.Metadata.clone()
	}
	if len(opts.Transient.TransientMetadata) > 0 {
		c.transientMeta = make(map[string]struct{}, len(opts.Transient.TransientMetadata))
		for _, key := range opts.Transient.TransientMetadata {
			c.transientMeta[key] = struct{}{}
		}
	}
	return c, nil
}

// URI returns the cell's location identifier.
func (c *Cell) URI() string {
	return c.uri
}

// Handle returns the cell's document-unique numeric identifier.
func (c *Cell) Handle() int64 {
	return c.handle
}

// Kind returns the cell kind.
func (c *Cell) Kind() CellKind {
	return c.kind
}

// TextBuffer returns the cell's edit-optimized buffer, constructing it
// from the raw source on first call. Construction subscribes a listener
// that invalidates the cached hash and forwards a content-changed event;
// later calls return the same buffer without reconstruction.
func (c *Cell) TextBuffer() *textbuf.Buffer {
	if c.buffer != nil {
		return c.buffer
	}

	c.buffer = textbuf.New(c.source, textbuf.Options{})
	c.bufferSub = c.buffer.OnChange(func(textbuf.ChangeEvent) {
		c.hashValid = false
		c.contentChanged.emit(struct{}{})
	})
	return c.buffer
}

// Value returns the full text content in the buffer's end-of-line
// convention, materializing the buffer if needed.
func (c *Cell) Value() string {
	return c.TextBuffer().Text()
}

// TextLength returns the content length in runes.
func (c *Cell) TextLength() int {
	return c.TextBuffer().Len()
}

// FullRange returns the range from the first position through the point
// just past the last rune of the last line.
func (c *Cell) FullRange() textbuf.Range {
	buf := c.TextBuffer()
	last := buf.LineCount()
	width, _ := buf.LineLength(last) // the last line always exists
	return textbuf.Range{
		Start: textbuf.Position{Line: 1, Column: 1},
		End:   textbuf.Position{Line: last, Column: width + 1},
	}
}

// Language returns the cell's language tag.
func (c *Cell) Language() string {
	return c.language
}

// SetLanguage replaces the language tag, invalidates the cached hash, and
// notifies language-change subscribers. The assignment is unconditional:
// setting the current value again still invalidates and notifies.
func (c *Cell) SetLanguage(language string) {
	c.language = language
	c.hashValid = false
	c.languageChanged.emit(language)
}

// Metadata returns the current metadata record.
func (c *Cell) Metadata() CellMetadata {
	return c.metadata
}

// SetMetadata replaces the entire metadata record, invalidates the cached
// hash, and notifies metadata-change subscribers. Like SetLanguage it is
// unconditional; there is no equality short-circuit. The record is deep
// copied, so the caller keeps no handle into the stored state.
func (c *Cell) SetMetadata(metadata CellMetadata) {
	c.metadata = metadata.clone()
	c.hashValid = false
	c.metadataChanged.emit(struct{}{})
}

// EvaluateMetadata produces the effective metadata for rendering and
// execution: the cell's own record with Editable and HasExecutionOrder
// resolved against the document defaults when unset. The stored record is
// not mutated.
func (c *Cell) EvaluateMetadata(defaults DocumentDefaults) CellMetadata {
	m := c.metadata.clone()
	if m.Editable == nil {
		m.Editable = Bool(defaults.CellEditable)
	}
	if m.HasExecutionOrder == nil {
		m.HasExecutionOrder = Bool(defaults.CellHasExecutionOrder)
	}
	return m
}

// Outputs returns the current output records, in order.
func (c *Cell) Outputs() []*Output {
	return append([]*Output(nil), c.outputs...)
}

// SpliceOutputs applies a batch of positional edits to the output list.
// Every splice's indices are interpreted against the pre-splice list, so
// application happens in reverse submission order to keep earlier-computed
// positions valid; when splices in a batch overlap, the ones applied later
// clamp to whatever the earlier ones left behind. A single outputs-changed
// event then carries the original, unreversed batch. Indices outside the
// pre-splice list fail with ErrInvalidSplice before any mutation or
// notification.
func (c *Cell) SpliceOutputs(splices []OutputSplice) error {
	for _, s := range splices {
		if s.Start < 0 || s.DeleteCount < 0 || s.Start+s.DeleteCount > len(c.outputs) {
			return ErrInvalidSplice
		}
	}

	for i := len(splices) - 1; i >= 0; i-- {
		c.outputs = applySplice(c.outputs, splices[i])
	}

	// Outputs contribute to the identity hash unless marked transient, so
	// a successful splice must drop the cached value.
	if !c.transientOutputs {
		c.hashValid = false
	}
	c.outputsChanged.emit(splices)
	return nil
}

// HashValue returns the memoized identity hash, recomputing it only when
// language, content, metadata, or (unless transient) outputs changed since
// the last computation.
func (c *Cell) HashValue() uint64 {
	if c.hashValid {
		return c.hash
	}
	c.hash = c.computeHash()
	c.hashValid = true
	return c.hash
}

// ResolveTextModelRef forwards to the host's model-resolution service to
// obtain a shared, disposable reference to this cell's buffer.
func (c *Cell) ResolveTextModelRef(ctx context.Context) (*ModelRef, error) {
	if c.resolver == nil {
		return nil, ErrNoResolver
	}
	return c.resolver.ResolveTextModel(ctx, c.uri)
}

// OnContentChange registers a listener for content edits. No payload.
func (c *Cell) OnContentChange(fn func()) *Subscription {
	return c.contentChanged.subscribe(func(struct{}) { fn() })
}

// OnMetadataChange registers a listener for metadata replacement. No payload.
func (c *Cell) OnMetadataChange(fn func()) *Subscription {
	return c.metadataChanged.subscribe(func(struct{}) { fn() })
}

// OnLanguageChange registers a listener invoked with the new language tag.
func (c *Cell) OnLanguageChange(fn func(language string)) *Subscription {
	return c.languageChanged.subscribe(fn)
}

// OnOutputsChange registers a listener invoked with each applied splice
// batch, in the order the splices were submitted.
func (c *Cell) OnOutputsChange(fn func(splices []OutputSplice)) *Subscription {
	return c.outputsChanged.subscribe(fn)
}

// Dispose releases the cell's buffer binding, swapping in an empty,
// already-disposed placeholder so stale references cannot retain a large
// buffer, then disconnects every subscriber. Idempotent.
func (c *Cell) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	if c.bufferSub != nil {
		c.bufferSub.Unsubscribe()
		c.bufferSub = nil
	}
	c.buffer = textbuf.Placeholder()

	c.contentChanged.clear()
	c.metadataChanged.clear()
	c.languageChanged.clear()
	c.outputsChanged.clear()
}

// Disposed reports whether the cell has been disposed.
func (c *Cell) Disposed() bool {
	return c.disposed
}
