package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/LegendaryTyan/VKR/internal/auth"
	"github.com/LegendaryTyan/VKR/internal/progression"
)

// Client is one connected WebSocket peer with its buffered outbound queue.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *Client {
	c := &Client{
		conn: conn,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *Client) close() {
	close(c.send)
}

// SnapshotFunc produces the current full state for new clients and
// resync ticks.
type SnapshotFunc func() SnapshotPayload

// Hub fans progression events and session transitions out to connected
// WebSocket clients. New clients get a snapshot immediately; a periodic
// ticker re-sends snapshots so a client that missed a delta converges.
type Hub struct {
	mu             sync.RWMutex
	clients        map[*Client]bool
	snapshot       SnapshotFunc
	snapshotTicker *time.Ticker
	log            zerolog.Logger
}

// NewHub creates a hub resyncing every snapshotInterval.
func NewHub(snapshot SnapshotFunc, snapshotInterval time.Duration, log zerolog.Logger) *Hub {
	h := &Hub{
		clients:  make(map[*Client]bool),
		snapshot: snapshot,
		log:      log,
	}
	h.snapshotTicker = time.NewTicker(snapshotInterval)
	go h.snapshotLoop()
	return h
}

// AddClient registers conn and immediately queues a snapshot for it.
func (h *Hub) AddClient(conn *websocket.Conn) *Client {
	c := newClient(conn)

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	msg := WSMessage{Type: MsgSnapshot, Payload: h.snapshot()}
	data, _ := json.Marshal(msg)

	select {
	case c.send <- data:
	default:
		// Client too slow, drop the snapshot
	}

	return c
}

// RemoveClient unregisters c and closes its send channel.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

// BroadcastEvents pushes one mutation's event cascade to every client.
func (h *Hub) BroadcastEvents(events []progression.Event) {
	if len(events) == 0 {
		return
	}
	h.broadcast(WSMessage{Type: MsgEvents, Payload: EventsPayload{Events: events}})
}

// BroadcastSession pushes a session state transition to every client.
func (h *Hub) BroadcastSession(st auth.State) {
	h.broadcast(WSMessage{Type: MsgSession, Payload: SessionPayload{Session: st}})
}

func (h *Hub) snapshotLoop() {
	for range h.snapshotTicker.C {
		h.broadcast(WSMessage{Type: MsgSnapshot, Payload: h.snapshot()})
	}
}

func (h *Hub) broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Msg("broadcast marshal error")
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			// Client can't keep up, disconnect it
			h.log.Warn().Msg("ws client too slow, disconnecting")
			h.RemoveClient(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
