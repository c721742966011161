// internal/socket/handler.go
package socket

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The poll page is public; any origin may connect.
		return true
	},
}

// PollTokenChecker reports whether a poll token refers to a live poll.
type PollTokenChecker func(ctx context.Context, pollToken string) (bool, error)

// Handler handles WebSocket connections for public poll pages
type Handler struct {
	Hub        *Hub
	CheckToken PollTokenChecker
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, checkToken PollTokenChecker) *Handler {
	return &Handler{
		Hub:        hub,
		CheckToken: checkToken,
	}
}

// HandleWebSocket upgrades a connection for the poll identified by the
// token path parameter. No account is required; the unguessable token
// is the only credential.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	pollToken := c.Param("token")
	if pollToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No poll token provided"})
		return
	}

	ok, err := h.CheckToken(c.Request.Context(), pollToken)
	if err != nil {
		log.Printf("[WebSocket] Poll token check error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WebSocket] Upgrade error: %v", err)
		return
	}

	client := NewClient(h.Hub, pollToken, conn)
	h.Hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// NewClient creates a new WebSocket client for a poll
func NewClient(hub *Hub, pollToken string, conn *websocket.Conn) *Client {
	return &Client{
		ID:        uuid.New().String(),
		PollToken: pollToken,
		Conn:      conn,
		Hub:       hub,
		Send:      make(chan []byte, 256),
		lastPing:  time.Now(),
	}
}
