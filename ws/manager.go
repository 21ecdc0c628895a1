package ws

import (
	"sync"

	"rapidjobs_backend/internal/logger"
)

// Event is the wire format for everything pushed over the socket.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Manager is the in-process event channel: it tracks connected clients and
// their room memberships and fans events out to them. Every client is
// automatically a member of its own user-id room.
type Manager struct {
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.joinLocked(client.UserID, client)
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "total", m.ClientCount())

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				for room := range client.rooms {
					m.leaveLocked(room, client)
				}
				delete(m.clients, client)
				close(client.send)
			}
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.UserID, "total", m.ClientCount())
		}
	}
}

// Emit broadcasts an event to every connected client.
func (m *Manager) Emit(event string, payload interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msg := Event{Event: event, Payload: payload}
	for client := range m.clients {
		m.deliver(client, msg)
	}
}

// EmitTo sends an event to every client in a room. Rooms are keyed by user
// id or by a job chat room id.
func (m *Manager) EmitTo(room string, event string, payload interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msg := Event{Event: event, Payload: payload}
	for client := range m.rooms[room] {
		m.deliver(client, msg)
	}
}

// Join adds a client to a room (e.g. a job chat room).
func (m *Manager) Join(room string, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joinLocked(room, client)
}

// Leave removes a client from a room.
func (m *Manager) Leave(room string, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaveLocked(room, client)
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) joinLocked(room string, client *Client) {
	if m.rooms[room] == nil {
		m.rooms[room] = make(map[*Client]bool)
	}
	m.rooms[room][client] = true
	client.rooms[room] = true
}

func (m *Manager) leaveLocked(room string, client *Client) {
	if members, ok := m.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(m.rooms, room)
		}
	}
	delete(client.rooms, room)
}

// deliver pushes without blocking; a client with a full send buffer is
// disconnected rather than stalling the fan-out.
func (m *Manager) deliver(client *Client, msg Event) {
	select {
	case client.send <- msg:
	default:
		go func() { m.unregister <- client }()
		logger.Warn("ws client dropped, send buffer full", "user_id", client.UserID)
	}
}
