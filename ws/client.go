package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"rapidjobs_backend/internal/logger"
)

const sendBufferSize = 32

type Client struct {
	UserID  string
	conn    *websocket.Conn
	send    chan Event
	rooms   map[string]bool
	manager *Manager
}

type incomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the connection and registers the client with the manager.
func ServeWS(manager *Manager, w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		UserID:  userID,
		conn:    conn,
		send:    make(chan Event, sendBufferSize),
		rooms:   make(map[string]bool),
		manager: manager,
	}

	manager.register <- client

	go client.readPump()
	go client.writePump()
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	for {
		_, msgBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "error", err)
			}
			break
		}

		var msg incomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Debug("ws invalid message", "error", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			logger.Debug("ws write error", "error", err)
			break
		}
	}
}

// Clients manage their own chat-room membership; everything else is pushed
// server-side.
func (c *Client) handleMessage(msg incomingMessage) {
	switch msg.Action {
	case "join":
		var payload struct {
			Room string `json:"room"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.Room == "" {
			return
		}
		c.manager.Join(payload.Room, c)

	case "leave":
		var payload struct {
			Room string `json:"room"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.Room == "" {
			return
		}
		c.manager.Leave(payload.Room, c)

	default:
		logger.Debug("ws unhandled action", "action", msg.Action)
	}
}
