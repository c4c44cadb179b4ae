package stream

import (
	"sync"

	"tradeterm/internal/logger"
)

// Row is the latest datapoint published for one livestream table. The payload
// is kept opaque; the terminal relays it, it does not interpret it.
type Row struct {
	TableName string                 `json:"TableName"`
	Fields    map[string]interface{} `json:"fields"`
}

// Hub caches the latest row per table and fans every update out to connected
// subscribers. Slow subscribers are dropped rather than allowed to block the
// publisher.
type Hub struct {
	mu     sync.RWMutex
	latest map[string]Row
	subs   map[chan Row]struct{}
	log    *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		latest: make(map[string]Row),
		subs:   make(map[chan Row]struct{}),
		log:    log,
	}
}

// Publish stores the row as the table's latest and broadcasts it. A subscriber
// whose buffer is full misses this update and keeps its subscription.
func (h *Hub) Publish(row Row) {
	h.mu.Lock()
	h.latest[row.TableName] = row
	for ch := range h.subs {
		select {
		case ch <- row:
		default:
		}
	}
	h.mu.Unlock()
}

// Latest returns the cached latest row per table.
func (h *Hub) Latest() []Row {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rows := make([]Row, 0, len(h.latest))
	for _, row := range h.latest {
		rows = append(rows, row)
	}
	return rows
}

// Subscribe registers a new listener. The returned cancel func must be called
// when the listener goes away.
func (h *Hub) Subscribe() (<-chan Row, func()) {
	ch := make(chan Row, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// SubscriberCount reports how many listeners are connected.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
