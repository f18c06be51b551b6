// Package websocket is the transport for spec.md §4.4's standings
// broadcast: every StandingsUpdateEvent published by internal/cache is
// fanned out to connected clients as JSON. Grounded on the teacher's
// Hub (register/unregister/broadcast goroutine, a buffered Send channel
// per client), with the payload swapped from a generic WebSocketMessage
// to the engine's own event type.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pawnengine/core/internal/domain"
)

// Client represents a single WebSocket connection.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte // buffered channel of outbound messages
}

// Hub maintains the set of active clients and broadcasts
// StandingsUpdateEvents to them.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan domain.StandingsUpdateEvent
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan domain.StandingsUpdateEvent),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("websocket: error writing message: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump only detects closed connections; clients never send standings
// updates back to the server.
func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket: unexpected close error: %v", err)
			}
			return
		}
	}
}

// Run drives the hub's register/unregister/broadcast loop. Broadcasting
// to a client whose buffer is full unregisters it, same as the teacher's
// hub -- unlike internal/cache.Broadcaster, a live client connection is a
// resource worth reclaiming, not just an event worth dropping.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("websocket: client registered, total %d", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("websocket: client unregistered, total %d", len(h.clients))
			}
			h.mu.Unlock()

		case event := <-h.Broadcast:
			jsonData, err := json.Marshal(event)
			if err != nil {
				log.Printf("websocket: error marshalling event: %v", err)
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- jsonData:
				default:
					log.Printf("websocket: client send buffer full, closing")
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
			log.Printf("websocket: broadcast event type=%s tournament=%d", event.EventType, event.TournamentID)
		}
	}
}

// Register hands a new client to the hub's run loop.
func (h *Hub) Register(client *Client) {
	h.register <- client
}
