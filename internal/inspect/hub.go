// Package inspect publishes the live position to read-only observers over
// HTTP and websocket.
package inspect

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hailam/chessdrop/internal/scene"
)

// PieceInfo is one piece in a snapshot.
type PieceInfo struct {
	ID     string `json:"id"`
	Color  string `json:"color"`
	Kind   string `json:"kind"`
	Square string `json:"square"`
}

// Snapshot is an immutable view of the game published from the game loop.
type Snapshot struct {
	Seq      uint64      `json:"seq"`
	FEN      string      `json:"fen"`
	Pieces   []PieceInfo `json:"pieces"`
	LastSAN  string      `json:"lastSan,omitempty"`
	Awaiting bool        `json:"awaitingPromotion"`
}

// SnapshotOf captures the controller's current state. Call it from the
// goroutine that drives the controller.
func SnapshotOf(c *scene.Controller) Snapshot {
	pieces := c.Board().Pieces()
	s := Snapshot{
		FEN:      c.Position(),
		Pieces:   make([]PieceInfo, 0, len(pieces)),
		LastSAN:  c.LastSAN(),
		Awaiting: c.State() == scene.AwaitingPromotion,
	}
	for _, p := range pieces {
		s.Pieces = append(s.Pieces, PieceInfo{
			ID:     p.ID.String(),
			Color:  p.Color.String(),
			Kind:   p.Kind.String(),
			Square: p.Square.String(),
		})
	}
	return s
}

// Hub holds the latest snapshot and fans it out to subscribers. Slow
// subscribers only ever see the newest snapshot.
type Hub struct {
	mu     sync.RWMutex
	latest Snapshot
	subs   map[uint64]chan Snapshot
	nextID uint64
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[uint64]chan Snapshot),
		logger: logger.Named("inspect"),
	}
}

// Publish stores s as the latest snapshot and notifies subscribers.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s.Seq = h.latest.Seq + 1
	h.latest = s
	for _, ch := range h.subs {
		select {
		case ch <- s:
		default:
			// Replace the stale snapshot.
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

// Latest returns the newest snapshot.
func (h *Hub) Latest() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Subscribe returns a channel of future snapshots and a function that
// unsubscribes and closes it.
func (h *Hub) Subscribe() (<-chan Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Snapshot, 1)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Observe publishes a snapshot now and after every controller event.
func (h *Hub) Observe(c *scene.Controller) {
	h.Publish(SnapshotOf(c))
	c.Subscribe(func(ev scene.Event) {
		if ev.Kind == scene.EventRejected {
			return
		}
		h.Publish(SnapshotOf(c))
		h.logger.Debug("published", zap.Stringer("event", ev.Kind), zap.String("fen", ev.FEN))
	})
}
