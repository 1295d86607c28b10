package live

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/dto"
)

type EventType string

const (
	EventTradeCreated EventType = "trade.created"
	EventTradeUpdated EventType = "trade.updated"
	EventTradeDeleted EventType = "trade.deleted"
)

// Event is a journal mutation pushed to connected dashboard clients.
type Event struct {
	Type  EventType  `json:"type"`
	Trade *dto.Trade `json:"trade,omitempty"`
	ID    string     `json:"id,omitempty"`
}

// Hub fans journal events out to websocket subscribers. Subscribers that
// cannot keep up are dropped rather than blocking the request path.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
	upgrader    websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// single-user journal, same-origin checks add nothing here
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Publish delivers an event to every subscriber without blocking.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for subscriber := range h.subscribers {
		select {
		case subscriber <- event:
		default:
			delete(h.subscribers, subscriber)
			close(subscriber)
			logger.Warn("[live] dropped slow subscriber")
		}
	}
}

func (h *Hub) subscribe() chan Event {
	events := make(chan Event, 16)
	h.mu.Lock()
	h.subscribers[events] = struct{}{}
	h.mu.Unlock()
	return events
}

func (h *Hub) unsubscribe(events chan Event) {
	h.mu.Lock()
	if _, ok := h.subscribers[events]; ok {
		delete(h.subscribers, events)
		close(events)
	}
	h.mu.Unlock()
}

// SubscriberCount reports the number of connected clients.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Handler upgrades the request to a websocket and streams journal events
// until the client disconnects.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Error("[live] websocket upgrade failed")
			return
		}

		events := h.subscribe()
		logger.WithField("remote", conn.RemoteAddr().String()).Info("[live] subscriber connected")

		// reader goroutine only to detect the close frame
		go func() {
			defer h.unsubscribe(events)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for event := range events {
			if err := conn.WriteJSON(event); err != nil {
				logger.WithError(err).Debug("[live] write failed, closing subscriber")
				break
			}
		}

		h.unsubscribe(events)
		_ = conn.Close()
	}
}
