package notebook

// Subscription is a handle to a registered listener.
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

type handler[T any] struct {
	id uint64
	fn func(T)
}

// emitter is a single-concern publish/subscribe channel: one event kind,
// zero or one payload type. Delivery is synchronous and in registration
// order. Like the cell model it serves, it relies on the host serializing
// access; it performs no locking of its own.
type emitter[T any] struct {
	handlers []handler[T]
	nextID   uint64
}

// subscribe registers fn and returns its subscription handle.
func (e *emitter[T]) subscribe(fn func(T)) *Subscription {
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, handler[T]{id: id, fn: fn})

	return &Subscription{cancel: func() {
		for i, h := range e.handlers {
			if h.id == id {
				e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
				break
			}
		}
	}}
}

// emit delivers v to every handler registered at the time of the call.
// Handlers that unsubscribe during delivery are still invoked for v.
func (e *emitter[T]) emit(v T) {
	snapshot := append([]handler[T](nil), e.handlers...)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// clear drops every handler, disconnecting all subscribers.
func (e *emitter[T]) clear() {
	e.handlers = nil
}
