package live

import (
	"encoding/json"
	"sync"
	"time"

	"quadra/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// FeedEvent is a real-time event pushed to clients
type FeedEvent struct {
	Type    string      `json:"type"`
	CourtID string      `json:"court_id"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventReservationCreated   = "reservation_created"
	EventReservationCancelled = "reservation_cancelled"
)

// connection represents a single WebSocket client
type connection struct {
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	courts map[string]bool // subscribed court IDs, empty means all
}

// Hub manages all active live-feed connections
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]*connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// ReservationCreated satisfies the reservation engine's feed publisher.
func (h *Hub) ReservationCreated(res *domain.Reservation) {
	h.broadcast(&FeedEvent{
		Type:    EventReservationCreated,
		CourtID: res.CourtID.String(),
		Payload: res,
	})
}

func (h *Hub) ReservationCancelled(res *domain.Reservation) {
	h.broadcast(&FeedEvent{
		Type:    EventReservationCancelled,
		CourtID: res.CourtID.String(),
		Payload: res,
	})
}

// broadcast sends an event to every client subscribed to the court.
// Connections with no explicit subscriptions get everything.
func (h *Hub) broadcast(event *FeedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if len(c.courts) > 0 && !c.courts[event.CourtID] {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client too slow, skip
		}
	}
}

// ServeWS registers a new connection and starts read/write loops
func (h *Hub) ServeWS(conn *websocket.Conn, userID uuid.UUID) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 256),
		courts: make(map[string]bool),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event struct {
			Type    string `json:"type"`
			CourtID string `json:"court_id"`
		}
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}

		switch event.Type {
		case "subscribe":
			h.mu.Lock()
			c.courts[event.CourtID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.courts, event.CourtID)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
