package controllers

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"routemaster/internal/sim"
)

// SimHub fans simulated bus positions out to every connected
// WebSocket client and owns the connection registry.
type SimHub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan sim.Position
}

// NewSimHub creates the hub and starts its broadcasting goroutine.
func NewSimHub() *SimHub {
	hub := &SimHub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan sim.Position, 100),
	}
	go hub.run()
	return hub
}

func (h *SimHub) run() {
	for pos := range h.broadcast {
		h.mu.Lock()
		for conn := range h.clients {
			if err := conn.WriteJSON(pos); err != nil {
				if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
					logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).
						Info("Client connection closed during broadcast, unregistering.")
				} else {
					logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).
						Warn("Failed to send position to client.")
				}
				delete(h.clients, conn)
			}
		}
		h.mu.Unlock()
	}
}

// Register adds a client connection to the hub.
func (h *SimHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client registered with SimHub.")
}

// Unregister removes a disconnected client connection.
func (h *SimHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client unregistered from SimHub.")
}

// Publish queues a position for broadcast. The simulator calls this on
// every step; a full buffer drops the update rather than stalling the
// simulation.
func (h *SimHub) Publish(pos sim.Position) {
	select {
	case h.broadcast <- pos:
	default:
		logrus.Warn("Position broadcast channel full, dropping update.")
	}
}
