package live

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Scope names the two kinds of broadcast channels a connection can hold
// membership in. A connection keeps at most one room per scope; joining a
// second room of the same scope replaces the first.
type Scope string

const (
	ScopeMatch Scope = "match"
	ScopeGame  Scope = "game"
)

func MatchRoom(matchID int) string { return "match_" + strconv.Itoa(matchID) }
func GameRoom(gameID int) string   { return "game_" + strconv.Itoa(gameID) }

// Message is the envelope pushed over every websocket connection.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	RoomID  string      `json:"room_id,omitempty"`
}

// Push event types. Names match what the dashboard pages listen for.
const (
	EventMatchStandings   = "matchDataUpdated"
	EventOverallStandings = "overallStandingsUpdated"
	EventTeamsChanged     = "teamDataUpdated"
	EventGamesChanged     = "gamesUpdated"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// JoinFunc is invoked after a client's room membership is recorded, so the
// caller can push the current view of the joined scope to that client alone.
type JoinFunc func(client *Client, scope Scope, id int)

type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		Hub:  hub,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
}

// Enqueue hands a marshalled message to the client's write pump. Delivery is
// best-effort: a client whose buffer is full is skipped, never waited on.
func (c *Client) Enqueue(message []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- message:
	default:
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.Send)
		c.closed = true
	}
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
	// membership tracks which room a client occupies per scope, so a second
	// join in the same scope replaces the first instead of accumulating.
	membership map[*Client]map[Scope]string

	onJoin JoinFunc
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		membership: make(map[*Client]map[Scope]string),
		logger:     logger,
	}
}

// SetJoinFunc installs the snapshot-on-join callback. Must be called before
// the first connection is accepted.
func (h *Hub) SetJoinFunc(fn JoinFunc) {
	h.onJoin = fn
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.membership[client] = make(map[Scope]string)
			h.mu.Unlock()
			h.logger.Debug("websocket client registered")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				for _, room := range h.membership[client] {
					h.removeFromRoom(client, room)
				}
				delete(h.membership, client)
				delete(h.clients, client)
				client.closeSend()
			}
			h.mu.Unlock()
			h.logger.Debug("websocket client unregistered")
		}
	}
}

// removeFromRoom must be called with h.mu held.
func (h *Hub) removeFromRoom(client *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Join subscribes the client to the match or game room for id, replacing any
// previous room of the same scope, then triggers the snapshot callback.
func (h *Hub) Join(client *Client, scope Scope, id int) {
	var room string
	switch scope {
	case ScopeMatch:
		room = MatchRoom(id)
	case ScopeGame:
		room = GameRoom(id)
	default:
		return
	}

	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	if prev, ok := h.membership[client][scope]; ok && prev != room {
		h.removeFromRoom(client, prev)
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	h.membership[client][scope] = room
	h.mu.Unlock()

	h.logger.Debug("client joined room", slog.String("room", room))

	if h.onJoin != nil {
		h.onJoin(client, scope, id)
	}
}

// BroadcastToRoom pushes one message to every current member of the room.
// Best-effort, at-most-once: members with a full send buffer are skipped.
func (h *Hub) BroadcastToRoom(roomID string, message Message) {
	message.RoomID = roomID

	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message",
			slog.String("room", roomID), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[roomID]))
	for client := range h.rooms[roomID] {
		members = append(members, client)
	}
	h.mu.RUnlock()

	for _, client := range members {
		client.Enqueue(messageBytes)
	}
}

// BroadcastAll pushes one message to every connected client regardless of
// room membership. Used for coarse invalidations like the game list changing.
func (h *Hub) BroadcastAll(message Message) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		client.Enqueue(messageBytes)
	}
}

func marshalMessage(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// RoomSize reports current membership of a room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// ClientCount reports how many connections are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// joinIntent is the only client-to-server message the protocol understands.
type joinIntent struct {
	Action string `json:"action"`
	ID     int    `json:"id"`
}

// ReadPump consumes join intents from the connection until it drops. Leaving
// a room has no message of its own: membership is discarded on disconnect or
// replaced by the next join of the same scope.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("websocket read error", slog.Any("error", err))
			}
			break
		}

		var intent joinIntent
		if err := json.Unmarshal(raw, &intent); err != nil {
			c.Hub.logger.Debug("ignoring malformed client message", slog.Any("error", err))
			continue
		}

		switch intent.Action {
		case "join_match":
			c.Hub.Join(c, ScopeMatch, intent.ID)
		case "join_game":
			c.Hub.Join(c, ScopeGame, intent.ID)
		default:
			c.Hub.logger.Debug("ignoring unknown client action", slog.String("action", intent.Action))
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

			// One message per frame: every push is a standalone JSON
			// snapshot and must stay parseable on its own.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
