package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	// Displays connect from kiosk devices on arbitrary origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans broadcast events out to connected display clients. Delivery is
// best-effort: dead connections are dropped on write failure.
type Hub struct {
	logger *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub constructs an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{logger: logger, clients: make(map[*websocket.Conn]struct{})}
}

// Publish marshals the event and writes it to every connected client.
func (h *Hub) Publish(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.Warn("marshal realtime event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close() //nolint:errcheck
			delete(h.clients, conn)
		}
	}
}

// ClientCount returns the number of connected displays.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and pumps client messages. The only
// client-sent message is "refresh_display", which is re-broadcast to every
// display as a refresh event.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("display connected", zap.Int("clients", total))

	go h.readLoop(conn)
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		total := len(h.clients)
		h.mu.Unlock()
		conn.Close() //nolint:errcheck
		h.logger.Info("display disconnected", zap.Int("clients", total))
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var inbound struct {
			Event string `json:"event"`
		}
		if err := json.Unmarshal(message, &inbound); err != nil {
			continue
		}
		if inbound.Event == "refresh_display" {
			h.Publish(Refresh())
		}
	}
}
