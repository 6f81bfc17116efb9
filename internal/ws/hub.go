package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Event is the server-to-client frame.
type Event struct {
	Type string          `json:"type"`
	Room string          `json:"room,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ClientEvent is the client-to-server frame: join_room, leave_room,
// send_message.
type ClientEvent struct {
	Type string          `json:"type"`
	Room string          `json:"room"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	EventJoinRoom       = "join_room"
	EventLeaveRoom      = "leave_room"
	EventSendMessage    = "send_message"
	EventReceiveMessage = "receive_message"
)

type Client struct {
	UserID string
	Name   string
	Send   chan Event

	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
}

// Hub owns the room registry: room key -> set of clients. Membership is
// connection-scoped; a disconnect removes the client from every room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: map[string]map[*Client]struct{}{},
	}
}

func (h *Hub) AddClient(userID, name string, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		UserID: userID,
		Name:   name,
		Send:   make(chan Event, 64),
		conn:   conn,
		ctx:    ctx,
		cancel: cancel,
	}

	go c.writeLoop()
	go c.keepAliveLoop()

	logrus.WithFields(logrus.Fields{"user": userID, "name": name}).Info("ws connected")
	return c
}

// RemoveClient leaves every room and closes the connection. There is no
// further cleanup invariant: membership simply vanishes with the connection.
// The client must leave the registry before its loops stop, so that Relay
// never holds a reference to a client whose writer is gone.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	for room, set := range h.rooms {
		if _, ok := set[c]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	h.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	if c.conn != nil {
		_ = c.conn.Close(websocket.StatusNormalClosure, "bye")
	}
	logrus.WithField("user", c.UserID).Info("ws disconnected")
}

func (h *Hub) Join(c *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = map[*Client]struct{}{}
	}
	h.rooms[room][c] = struct{}{}
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{"user": c.UserID, "room": room}).Info("ws join")
}

func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	if set, ok := h.rooms[room]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{"user": c.UserID, "room": room}).Info("ws leave")
}

// Relay delivers ev to every client in the room except the sender. Slow
// clients get dropped frames rather than blocking the room.
func (h *Hub) Relay(room string, from *Client, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		if c == from {
			continue
		}
		select {
		case c.Send <- ev:
		default:
		}
	}
}

// writeLoop drains Send until the client context is cancelled. Send is never
// closed: a Relay racing a disconnect may still hold the channel, and an
// unclosed channel is collected with the client.
func (c *Client) writeLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.Send:
			writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			_ = wsjson.Write(writeCtx, c.conn, ev)
			cancel()
		}
	}
}

func (c *Client) keepAliveLoop() {
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = c.conn.Ping(pingCtx)
			cancel()
		}
	}
}
