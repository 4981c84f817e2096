package handler

import (
	"net/http"

	"campusvoice/backend/internal/livefeed"
	"campusvoice/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeLiveFeed оновлює HTTP-з'єднання до WebSocket. The session is resolved
// the same way as for REST endpoints; the token may arrive as a query
// parameter because browsers cannot set headers on websocket requests.
func (h *Handler) ServeLiveFeed(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
		return
	}

	sess, _, err := h.resolveSession(tokenString)
	if err != nil || sess == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := &livefeed.WebSocketClient{
		Hub:    h.Hub,
		UserID: sess.UserID,
		Admin:  sess.IsAdmin(),
		Conn:   conn,
		Send:   make(chan models.ComplaintEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
