// Package websocket pushes live safety events (alert dispatches, date
// session status changes) to the owning user's open dashboard.
package websocket

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event types pushed to the dashboard
const (
	EventAlertDispatched  = "alert_dispatched"
	EventSessionStarted   = "session_started"
	EventSessionCheckedIn = "session_checked_in"
	EventSessionOverdue   = "session_overdue"
	EventSessionEnded     = "session_ended"
)

// Message is one event frame sent to a client
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type connection struct {
	id     string
	userID string
	send   chan Message
	conn   *websocket.Conn
}

// Manager tracks open connections per user and routes events to them
type Manager struct {
	mu          sync.RWMutex
	connections map[string][]*connection // keyed by user ID
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// NewManager creates a connection manager
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		connections: make(map[string][]*connection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// the token already gates access; origin is not trusted
				return true
			},
		},
		logger: logger,
	}
}

// HandleConnection upgrades the request and serves the connection until the
// client goes away. The caller has already authenticated userID.
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	ws, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	c := &connection{
		id:     uuid.New().String(),
		userID: userID.String(),
		send:   make(chan Message, 32),
		conn:   ws,
	}

	m.mu.Lock()
	m.connections[c.userID] = append(m.connections[c.userID], c)
	m.mu.Unlock()

	go m.writePump(c)
	go m.readPump(c)
	return nil
}

// SendToUser delivers an event to every open connection of one user.
// Users with no open dashboard simply miss the live event; the underlying
// state is in the database regardless.
func (m *Manager) SendToUser(userID uuid.UUID, msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	m.mu.RLock()
	conns := m.connections[userID.String()]
	m.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- msg:
		default:
			m.logger.Warn("dropping websocket event, client too slow",
				zap.String("connection_id", c.id))
		}
	}
}

// Close shuts down every open connection
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, conns := range m.connections {
		for _, c := range conns {
			close(c.send)
		}
	}
	m.connections = make(map[string][]*connection)
}

func (m *Manager) writePump(c *connection) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; the channel is push-only. It exists to
// process control frames and detect the client closing.
func (m *Manager) readPump(c *connection) {
	defer m.remove(c)
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Manager) remove(c *connection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns := m.connections[c.userID]
	for i, existing := range conns {
		if existing.id == c.id {
			m.connections[c.userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(m.connections[c.userID]) == 0 {
		delete(m.connections, c.userID)
	}
	c.conn.Close()
}
