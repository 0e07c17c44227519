package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alexvielma/bingove/internal/logger"
	presenceRepo "github.com/alexvielma/bingove/internal/repositories/presence"
	gameService "github.com/alexvielma/bingove/internal/services/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// Message is one frame pushed to connected clients
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Config holds the hub's dependencies
type Config struct {
	GameService  gameService.Service
	PresenceRepo presenceRepo.Repository
}

// Hub maintains the set of active clients and pushes every committed game
// change and presence change to all of them. Clients receive full snapshots,
// never diffs, so a reconnect needs no catch-up protocol.
type Hub struct {
	gameService  gameService.Service
	presenceRepo presenceRepo.Repository

	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Message
	userID string
}

// New creates a new Hub instance with injected dependencies
func New(cfg *Config) *Hub {
	return &Hub{
		gameService:  cfg.GameService,
		presenceRepo: cfg.PresenceRepo,
		clients:      make(map[*Client]bool),
		broadcast:    make(chan Message),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
	}
}

// Start begins the hub's main loop and the snapshot pumps
func (h *Hub) Start(ctx context.Context) error {
	games, err := h.gameService.Subscribe(ctx)
	if err != nil {
		return err
	}

	counts, err := h.presenceRepo.SubscribeCount(ctx)
	if err != nil {
		return err
	}

	go h.run(ctx)

	go func() {
		for record := range games {
			h.BroadcastMessage("game_update", record)
		}
	}()

	go func() {
		for count := range counts {
			h.BroadcastMessage("presence", map[string]interface{}{
				"online": count,
			})
		}
	}()

	return nil
}

// run handles client registration/unregistration and message broadcasting
func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			logger.Debug().Int("total_clients", total).Msg("client connected")

			if client.userID != "" {
				if err := h.presenceRepo.Connect(ctx, &presenceRepo.ConnectInput{UserID: client.userID}); err != nil {
					logger.Error().Err(err).Str("user_id", client.userID).Msg("presence connect failed")
				}
			}

			// Send the current snapshot so the new client renders immediately.
			go func() {
				record, err := h.gameService.GetGame(ctx)
				if err != nil {
					logger.Error().Err(err).Msg("initial snapshot read failed")
					return
				}
				h.trySend(client, Message{Type: "game_update", Payload: record})
			}()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			logger.Debug().Int("total_clients", total).Msg("client disconnected")

			if client.userID != "" {
				if err := h.presenceRepo.Disconnect(ctx, &presenceRepo.DisconnectInput{UserID: client.userID}); err != nil {
					logger.Error().Err(err).Str("user_id", client.userID).Msg("presence disconnect failed")
				}
			}

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// trySend delivers a message to one client while it is still registered.
// Unregistering closes the send channel under the same mutex, so the
// membership check keeps a late snapshot from hitting a closed channel.
func (h *Hub) trySend(client *Client, message Message) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if !h.clients[client] {
		return false
	}

	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}

// BroadcastMessage sends a message to all connected clients
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) {
	h.broadcast <- Message{
		Type:    msgType,
		Payload: payload,
	}
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug().Err(err).Msg("websocket read error")
			}
			break
		}
		// Clients only listen; inbound frames keep the read deadline fresh.
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			msgBytes, _ := json.Marshal(message)
			w.Write(msgBytes)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs handles websocket requests from clients. An optional userId query
// parameter makes the connection count toward the online registry.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Msg("websocket upgrade error")
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan Message, 256),
		userID: r.URL.Query().Get("userId"),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}
