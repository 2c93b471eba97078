package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// same-origin enforcement happens in the CORS layer; the upgrade itself
	// accepts any origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades an authenticated request to a WebSocket that streams the
// user's notifications as they are stored.
// GET /api/notifications/ws
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade to WebSocket"})
			return
		}

		client := NewClient(userID.(string), conn, hub)
		hub.register <- client

		go client.readPump()
		go client.writePump()
	}
}
