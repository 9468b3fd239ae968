package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"studiobook/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// Event tells clients that something changed so they can refetch. It carries
// identifiers only, never customer details.
type Event struct {
	Type   string        `json:"type"`
	ID     string        `json:"id"`
	Studio domain.Studio `json:"studio,omitempty"`
	Date   domain.Date   `json:"date"`
}

const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationFinalized = "reservation.finalized"
	EventReservationCancelled = "reservation.cancelled"
	EventEngineersAssigned    = "reservation.engineers_assigned"
	EventEngineerCreated      = "engineer.created"
	EventEngineerDeleted      = "engineer.deleted"
)

// connection is one websocket client. An empty studio set means every studio.
type connection struct {
	conn    *websocket.Conn
	send    chan []byte
	studios map[domain.Studio]bool
}

func (c *connection) wants(s domain.Studio) bool {
	return s == "" || len(c.studios) == 0 || c.studios[s]
}

// Hub fans events out to connected clients.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{connections: make(map[*connection]struct{})}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Publish sends e to every interested client. Clients whose buffer is full
// miss the event.
func (h *Hub) Publish(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Str("type", e.Type).Msg("Failed to encode realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.wants(e.Studio) {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close drops every client. Used on shutdown since hijacked connections are
// not closed by http.Server.Shutdown.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		_ = c.conn.Close()
	}
}

// ServeWS registers conn and blocks until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn, studios []domain.Studio) {
	c := &connection{
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		studios: make(map[domain.Studio]bool),
	}
	for _, s := range studios {
		c.studios[s] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
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

		var req struct {
			Type   string        `json:"type"`
			Studio domain.Studio `json:"studio"`
		}
		if err := json.Unmarshal(msg, &req); err != nil || !req.Studio.Valid() {
			continue
		}

		switch req.Type {
		case "subscribe":
			h.mu.Lock()
			c.studios[req.Studio] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.studios, req.Studio)
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
