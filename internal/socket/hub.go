// internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Poll messages
	MessageTallyUpdated     MessageType = "tally_updated"
	MessageJobPosted        MessageType = "job_posted"
	MessageJobStatusChanged MessageType = "job_status_changed"
	MessagePollClosed       MessageType = "poll_closed"

	// System messages
	MessagePing MessageType = "ping"
	MessagePong MessageType = "pong"
	MessageAck  MessageType = "ack"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType            `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Client represents a connected poll viewer
type Client struct {
	ID        string
	PollToken string
	Conn      *websocket.Conn
	Hub       *Hub
	Send      chan []byte
	lastPing  time.Time
}

// Hub maintains the set of active poll viewers and broadcasts tally
// updates to them, grouped by poll token.
type Hub struct {
	clients map[*Client]bool

	// Clients indexed by poll token
	pollClients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Broadcast to all viewers of one poll
	pollBroadcast chan *PollMessage

	mu sync.RWMutex
}

// PollMessage represents a message for all viewers of a poll
type PollMessage struct {
	PollToken string
	Message   []byte
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		pollClients:   make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		pollBroadcast: make(chan *PollMessage, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	log.Println("[Hub] WebSocket hub started")

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case pm := <-h.pollBroadcast:
			h.broadcastToPoll(pm)

		case <-pingTicker.C:
			h.pingClients()
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	if h.pollClients[client.PollToken] == nil {
		h.pollClients[client.PollToken] = make(map[*Client]bool)
	}
	h.pollClients[client.PollToken][client] = true

	log.Printf("[Hub] Client registered: id=%s, total_clients=%d", client.ID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)

		if clients, ok := h.pollClients[client.PollToken]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.pollClients, client.PollToken)
			}
		}

		close(client.Send)
		log.Printf("[Hub] Client disconnected: id=%s, total_clients=%d", client.ID, len(h.clients))
	}
}

func (h *Hub) broadcastToPoll(pm *PollMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.pollClients[pm.PollToken]
	if !ok {
		return
	}

	for client := range clients {
		select {
		case client.Send <- pm.Message:
		default:
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

func (h *Hub) pingClients() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      MessagePing,
		Timestamp: time.Now(),
	}
	data, _ := json.Marshal(msg)

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

// SendToPoll broadcasts a message to all viewers of a poll
func (h *Hub) SendToPoll(pollToken string, msgType MessageType, payload map[string]interface{}) {
	msg := Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Hub] Error marshaling message: %v", err)
		return
	}

	h.pollBroadcast <- &PollMessage{
		PollToken: pollToken,
		Message:   data,
	}
}

// GetPollViewers returns the number of connected viewers for a poll
func (h *Hub) GetPollViewers(pollToken string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.pollClients[pollToken]; ok {
		return len(clients)
	}
	return 0
}

// GetConnectedClientsCount returns total connected clients
func (h *Hub) GetConnectedClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
