package realtime

import (
	"encoding/json"
	"log/slog"

	"manhwahub/internal/microservices/http-api/models"
)

// Hub fans stored notifications out to the owner's open WebSocket
// connections. Each connection runs its own pumps; all bookkeeping goes
// through the hub's channels to avoid locking.
type Hub struct {
	clients    map[string]map[*Client]bool // userID -> connections
	register   chan *Client
	unregister chan *Client
	push       chan models.Notification
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		push:       make(chan models.Notification, 64),
		logger:     logger,
	}
}

// Run processes registrations and pushes until the channel loop exits.
// Call it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case notification := <-h.push:
			h.deliver(notification)
		}
	}
}

func (h *Hub) add(client *Client) {
	conns, ok := h.clients[client.UserID]
	if !ok {
		conns = make(map[*Client]bool)
		h.clients[client.UserID] = conns
	}
	conns[client] = true
	h.logger.Debug("realtime_client_connected", "user_id", client.UserID)
}

func (h *Hub) remove(client *Client) {
	conns, ok := h.clients[client.UserID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	close(client.send)
	if len(conns) == 0 {
		delete(h.clients, client.UserID)
	}
}

func (h *Hub) deliver(notification models.Notification) {
	conns := h.clients[notification.UserID]
	if len(conns) == 0 {
		return
	}

	data, err := json.Marshal(notification)
	if err != nil {
		h.logger.Warn("realtime_marshal_failed", "error", err)
		return
	}

	for client := range conns {
		select {
		case client.send <- data:
		default:
			// slow consumer, drop the connection rather than block
			delete(conns, client)
			close(client.send)
		}
	}
	if len(conns) == 0 {
		delete(h.clients, notification.UserID)
	}
}

// Push queues a notification for delivery to the owner's connections.
// Shaped as a NotificationSubscriber so it plugs into the emitter. Offline
// users lose nothing: the notification is already stored by the time this
// runs.
func (h *Hub) Push(notification models.Notification) {
	select {
	case h.push <- notification:
	default:
		h.logger.Warn("realtime_push_dropped", "user_id", notification.UserID)
	}
}
