// Package refresh carries the view-invalidation signal from the score edit
// path to the rendering layer. The schedule handlers publish after every
// write; subscribers (the htmx response headers today, anything else later)
// learn a view is stale without the write path knowing how pages render.
package refresh

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// View names a page whose data changed.
type View string

// ViewSchedule covers the scoresheet and every aggregate derived from it.
const ViewSchedule View = "schedule"

type subscriber chan View

// Hub fans a refresh signal out to subscribers. Publishing never blocks: a
// subscriber that is not draining its channel misses the event.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away.
func (h *Hub) Subscribe() (<-chan View, func()) {
	ch := make(subscriber, 4)
	sub := &ch

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, sub)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish notifies every subscriber that view is stale.
func (h *Hub) Publish(view View) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case *sub <- view:
		default:
			log.Debug().Str("view", string(view)).Msg("Refresh subscriber not draining, dropping event")
		}
	}
}
