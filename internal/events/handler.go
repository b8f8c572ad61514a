package events

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the app origin; CORS is handled at
	// the HTTP layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.Subscribe)
}

// Subscribe upgrades the connection and keeps it registered until the
// client goes away. The stream is read-only for clients.
func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("events: upgrade failed: %v", err)
		return
	}

	subscriberID := uuid.New().String()
	if userID := c.GetString("user_id"); userID != "" {
		subscriberID = userID
	}

	h.hub.Register(subscriberID, conn)
	defer h.hub.Unregister(subscriberID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
