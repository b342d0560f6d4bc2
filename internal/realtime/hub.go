package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

type EventType string

const (
	EventSlotsChanged EventType = "slots_changed"
)

// Event tells connected booking pages that the availability of one
// barber on one date must be refetched.
type Event struct {
	Type      EventType `json:"type"`
	BarberID  string    `json:"barber_id"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher is what use cases notify after a booking changes occupancy.
type Publisher interface {
	SlotsChanged(barberID, date string)
}

type Nop struct{}

func (Nop) SlotsChanged(string, string) {}

type Hub struct {
	log *zap.Logger
	now func() time.Time

	mu      sync.RWMutex
	clients map[*client]struct{}

	broadcast  chan Event
	register   chan *client
	unregister chan *client
	done       chan struct{}
}

func NewHub(log *zap.Logger, now func() time.Time) *Hub {
	if now == nil {
		now = time.Now
	}
	return &Hub{
		log:        log,
		now:        now,
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan Event, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("ws client connected", zap.Int("clients", h.ClientCount()))

		case c := <-h.unregister:
			h.drop(c)

		case ev := <-h.broadcast:
			data, err := json.Marshal(ev)
			if err != nil {
				h.log.Error("ws marshal failed", zap.Error(err))
				continue
			}

			var slow []*client
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()

			for _, c := range slow {
				h.drop(c)
			}

		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) SlotsChanged(barberID, date string) {
	ev := Event{
		Type:      EventSlotsChanged,
		BarberID:  barberID,
		Date:      date,
		Timestamp: h.now(),
	}
	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn("ws broadcast channel full, dropping event",
			zap.String("barber_id", barberID),
			zap.String("date", date),
		)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var _ Publisher = (*Hub)(nil)
