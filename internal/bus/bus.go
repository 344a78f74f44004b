// Package bus provides in-process publish/subscribe for store events.
//
// Dispatch is synchronous and runs on the caller: when a subscriber is
// notified the store mutation that produced the event has fully applied.
// There is no persistence or replay; the bus only exists to decouple the
// store from reactive subscribers within one session.
package bus

import (
	"log/slog"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

// Handler receives published events.
type Handler func(model.Event)

type subscription struct {
	id      int
	handler Handler
}

// Bus dispatches events to subscribers in registration order.
// It is not safe for concurrent use; the core is single-writer.
type Bus struct {
	subs   []subscription
	nextID int
	logger *slog.Logger
}

// New creates a bus. A nil logger defaults to slog.Default().
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe registers a handler and returns a function that removes it.
// Handlers run in registration order.
func (b *Bus) Subscribe(h Handler) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every registered handler synchronously. A panicking
// handler is logged and skipped; it neither reaches the publisher nor
// stops the remaining handlers.
func (b *Bus) Publish(e model.Event) {
	// Snapshot so handlers that unsubscribe mid-dispatch don't skip peers.
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		b.dispatch(s, e)
	}
}

func (b *Bus) dispatch(s subscription, e model.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "event", e.Type, "panic", r)
		}
	}()
	s.handler(e)
}
