package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeRoutes ReloadMessageType = "routes"
	ReloadTypeError  ReloadMessageType = "error"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Count int               `json:"count,omitempty"`
	Error string            `json:"error,omitempty"`
}

const writeWait = 5 * time.Second

// ReloadHub manages WebSocket connections for route reload notifications.
type ReloadHub struct {
	clients  map[*websocket.Conn]bool
	last     *ReloadMessage
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewReloadHub creates a new reload hub. A nil logger uses slog.Default().
func NewReloadHub(logger *slog.Logger) *ReloadHub {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReloadHub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The widget is served from the host portal's origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With("component", "reload"),
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the
// client disconnects.
func (h *ReloadHub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	last := h.last
	h.mu.Unlock()
	h.logger.Debug("client connected", "remote", req.RemoteAddr)

	if last != nil {
		if data, err := json.Marshal(last); err == nil {
			h.write(conn, data)
		}
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
}

// NotifyRebuild reports a rebuild result to all clients. It matches the
// server's OnRebuild hook.
func (h *ReloadHub) NotifyRebuild(routes int, err error) {
	if err != nil {
		h.broadcast(ReloadMessage{Type: ReloadTypeError, Error: err.Error()})
		return
	}
	h.broadcast(ReloadMessage{Type: ReloadTypeRoutes, Count: routes})
}

func (h *ReloadHub) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.last = &msg
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		h.write(client, data)
	}
}

// write sends one frame; gorilla connections allow a single writer at a time.
func (h *ReloadHub) write(conn *websocket.Conn, data []byte) {
	h.writeMu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := conn.WriteMessage(websocket.TextMessage, data)
	h.writeMu.Unlock()

	if err != nil {
		h.remove(conn)
	}
}

func (h *ReloadHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *ReloadHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *ReloadHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
