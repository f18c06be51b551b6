package handlers

import (
	"log"
	"net/http"

	gwebsocket "github.com/gorilla/websocket"

	"github.com/gin-gonic/gin"

	"github.com/pawnengine/core/internal/websocket"
)

var upgrader = gwebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs upgrades the connection and registers it with hub so it
// receives every StandingsUpdateEvent hub.Broadcast carries.
func ServeWs(hub *websocket.Hub, c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket: upgrade failed:", err)
		return
	}

	client := &websocket.Client{Conn: conn, Send: make(chan []byte, 256)}
	hub.Register(client)

	go client.WritePump()
	go client.ReadPump(hub)
}
