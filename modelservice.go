package notebook

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/phroun/notebook/textbuf"
)

// ModelResolver resolves a cell's location URI into a shared, disposable
// reference to its text buffer. The cell core only forwards requests; the
// reference counting lives behind this interface, in the host.
type ModelResolver interface {
	ResolveTextModel(ctx context.Context, uri string) (*ModelRef, error)
}

// ModelRef is a counted reference to a cell's text buffer. Release is
// idempotent; the buffer's lifetime stays with the owning cell, never with
// the reference.
type ModelRef struct {
	buffer  *textbuf.Buffer
	release func()
	once    sync.Once
}

// Buffer returns the referenced text buffer.
func (r *ModelRef) Buffer() *textbuf.Buffer {
	return r.buffer
}

// Release drops this reference. Safe to call more than once.
func (r *ModelRef) Release() {
	r.once.Do(r.release)
}

// ModelService is the host-side model resolver: a registry of live cells
// keyed by URI, handing out counted buffer references. Unlike the cell
// model it may be shared across goroutines, so it locks its own state.
type ModelService struct {
	mu     sync.Mutex
	logger *slog.Logger
	cells  map[string]*Cell
	refs   map[string]int
}

// NewModelService creates an empty registry. A nil logger discards logs.
func NewModelService(logger *slog.Logger) *ModelService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ModelService{
		logger: logger,
		cells:  make(map[string]*Cell),
		refs:   make(map[string]int),
	}
}

// Add registers a cell under its URI, replacing any previous registration.
func (s *ModelService) Add(c *Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[c.URI()] = c
}

// Remove drops the registration for a URI. Outstanding references remain
// valid; they hold the buffer directly.
func (s *ModelService) Remove(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cells, uri)
	delete(s.refs, uri)
}

// ResolveTextModel returns a counted reference to the buffer of the cell
// registered under uri, materializing the buffer if needed.
func (s *ModelService) ResolveTextModel(ctx context.Context, uri string) (*ModelRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	c, ok := s.cells[uri]
	if !ok {
		s.mu.Unlock()
		return nil, ErrModelNotFound
	}
	s.refs[uri]++
	count := s.refs[uri]
	s.mu.Unlock()

	s.logger.Debug("resolved text model", "uri", uri, "refs", count)

	return &ModelRef{
		buffer: c.TextBuffer(),
		release: func() {
			s.mu.Lock()
			if n, ok := s.refs[uri]; ok {
				if n <= 1 {
					delete(s.refs, uri)
				} else {
					s.refs[uri] = n - 1
				}
			}
			remaining := s.refs[uri]
			s.mu.Unlock()
			s.logger.Debug("released text model", "uri", uri, "refs", remaining)
		},
	}, nil
}

// Refs returns the current reference count for a URI.
func (s *ModelService) Refs(uri string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs[uri]
}
