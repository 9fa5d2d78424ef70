package notification

import (
	"encoding/json"
	"sync"
	"time"

	"tutorhub/internal/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// Event is pushed to connected clients.
type Event struct {
	Type       string               `json:"type"`
	Booking    *domain.Booking      `json:"booking"`
	FromStatus domain.BookingStatus `json:"fromStatus,omitempty"`
	At         time.Time            `json:"at"`
}

type client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub keeps one live connection per user. A newer connection replaces the older one.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*client),
		log:     log,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[c.userID]; ok {
		close(old.send)
	}
	h.clients[c.userID] = c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.clients[c.userID]; ok && existing == c {
		delete(h.clients, c.userID)
		close(c.send)
	}
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.clients[userID]
	return ok
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// SendToUser queues the event for the user. It reports false when the user is
// offline or their buffer is full.
func (h *Hub) SendToUser(userID string, event Event) bool {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("encode event", zap.String("type", event.Type), zap.Error(err))
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[userID]
	if !ok {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		h.log.Warn("event dropped, client too slow", zap.String("user_id", userID), zap.String("type", event.Type))
		return false
	}
}

func (h *Hub) BookingCreated(b *domain.Booking) {
	h.toParties(b, Event{Type: EventBookingCreated, Booking: b, At: time.Now().UTC()})
}

func (h *Hub) BookingStatusChanged(b *domain.Booking, from domain.BookingStatus) {
	h.toParties(b, Event{Type: EventBookingStatusChanged, Booking: b, FromStatus: from, At: time.Now().UTC()})
}

func (h *Hub) toParties(b *domain.Booking, event Event) {
	h.SendToUser(b.StudentID, event)
	h.SendToUser(b.TutorID, event)
}

// Serve runs the connection until the client goes away.
func (h *Hub) Serve(conn *websocket.Conn, userID string) {
	c := &client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.register(c)
	h.log.Debug("websocket connected", zap.String("user_id", userID))

	go h.writePump(c)
	h.readPump(c)
}

// readPump only drains control frames. Clients do not send events.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
		h.log.Debug("websocket disconnected", zap.String("user_id", c.userID))
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read failed", zap.String("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}
