package brackets

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MessageTournamentUpdated = "TOURNAMENT_UPDATED"
	MessageTournamentDeleted = "TOURNAMENT_DELETED"
	MessageClockTick         = "CLOCK_TICK"
)

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Room     string
	IsClosed bool
	Mu       sync.Mutex
}

type WebSocketMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

const roomPrefix = "tournament_"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Hub fans tournament updates out to the public viewers of each tournament room.
type Hub struct {
	register   chan joinRequest
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
	onChange   func(clients int)
	done       chan struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan joinRequest),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// OnClientsChanged registers a callback invoked with the total client count after every
// register/unregister. It must be set before Run.
func (h *Hub) OnClientsChanged(fn func(clients int)) {
	h.onChange = fn
}

// RoomID is the hub room that carries updates for one tournament.
func RoomID(tournamentID string) string {
	return roomPrefix + tournamentID
}

// TournamentIDFromRoom is the inverse of RoomID.
func TournamentIDFromRoom(roomID string) (string, bool) {
	id, ok := strings.CutPrefix(roomID, roomPrefix)
	return id, ok && id != ""
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case req := <-h.register:
			client := req.client
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.logger.Debug("client registered", slog.String("room", client.Room), slog.Int("room_clients", len(h.rooms[client.Room])))
			total := h.countLocked()
			h.mu.Unlock()
			close(req.joined)
			h.notify(total)

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.Room]; ok && clients[client] {
				client.close()
				delete(clients, client)
				if len(clients) == 0 {
					delete(h.rooms, client.Room)
					h.logger.Debug("room closed", slog.String("room", client.Room))
				}
			}
			total := h.countLocked()
			h.mu.Unlock()
			h.notify(total)
		}
	}
}

type joinRequest struct {
	client *Client
	joined chan struct{}
}

// Join registers client and returns once it is in its room, so every later BroadcastToRoom
// reaches it. It returns false once the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	req := joinRequest{client: client, joined: make(chan struct{})}
	select {
	case h.register <- req:
	case <-h.done:
		return false
	}
	<-req.joined
	return true
}

// Leave queues client for removal; it never blocks after the hub has stopped.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// BroadcastToRoom marshals message once and queues it for every client of the room.
// Slow clients whose buffer is full miss the message.
func (h *Hub) BroadcastToRoom(roomID string, message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal room message", slog.String("room", roomID), slog.Any("error", err))
		return
	}

	for client := range roomClients {
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			h.logger.Warn("client send buffer full, dropping message", slog.String("room", roomID))
		}
		client.Mu.Unlock()
	}
}

// SendTo queues message for a single client, typically the initial state after it joins.
func (h *Hub) SendTo(client *Client, message interface{}) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal client message", slog.String("room", client.Room), slog.Any("error", err))
		return
	}
	client.Mu.Lock()
	defer client.Mu.Unlock()
	if client.IsClosed {
		return
	}
	select {
	case client.Send <- messageBytes:
	default:
		h.logger.Warn("client send buffer full, dropping message", slog.String("room", client.Room))
	}
}

// ActiveRooms lists the rooms that currently have at least one client.
func (h *Hub) ActiveRooms() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	rooms := make([]string, 0, len(h.rooms))
	for room := range h.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

func (h *Hub) countLocked() int {
	total := 0
	for _, clients := range h.rooms {
		total += len(clients)
	}
	return total
}

func (h *Hub) notify(total int) {
	if h.onChange != nil {
		h.onChange(total)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for client := range clients {
			client.close()
		}
		delete(h.rooms, room)
	}
}

func (c *Client) close() {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if !c.IsClosed {
		close(c.Send)
		c.IsClosed = true
	}
}

// ReadPump only drains control frames; viewers never send commands.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Leave(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("unexpected websocket close", slog.String("room", c.Room), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message keeps every frame a single JSON document.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Debug("websocket write failed", slog.String("room", c.Room), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
