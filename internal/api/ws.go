package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danmarai/slingshot-flyer/internal/models"
)

// snapshotInterval paces the state stream to connected clients. Events are
// pushed immediately; the full snapshot does not need to land every
// simulation tick.
const snapshotInterval = 50 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The browser client is served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the single frame type pushed to clients.
type wsMessage struct {
	Type  string         `json:"type"` // "state" or "event"
	State *stateResponse `json:"state,omitempty"`
	Event *models.Event  `json:"event,omitempty"`
}

// wsClient owns all writes to its connection through the send channel.
type wsClient struct {
	conn *websocket.Conn
	send chan wsMessage
}

type hub struct {
	mu      sync.Mutex
	clients map[*wsClient]bool
}

func newHub() *hub {
	return &hub{clients: make(map[*wsClient]bool)}
}

func (h *hub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *hub) empty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) == 0
}

// broadcast queues a frame for every client. Clients that cannot keep up are
// dropped rather than allowed to stall the simulation.
func (h *hub) broadcast(msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// snapshotLoop pushes the current state to connected clients at a fixed rate
// until the server is closed.
func (s *Server) snapshotLoop() {
	ticker := time.NewTicker(snapshotInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}
		if s.hub.empty() {
			continue
		}
		st := s.currentState()
		s.hub.broadcast(wsMessage{Type: "state", State: &st})
	}
}

// handleWS upgrades the connection and streams frames until the client goes
// away. Clients only listen; inputs arrive over the REST endpoints.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	client := &wsClient{conn: conn, send: make(chan wsMessage, 16)}
	s.hub.add(client)

	go func() {
		for msg := range client.send {
			if err := conn.WriteJSON(msg); err != nil {
				break
			}
		}
		conn.Close()
	}()

	// Drain client frames so pings and closes are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.hub.remove(client)
}
