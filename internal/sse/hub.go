package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SnakeCrawl_Go/internal/logger"
)

// Event is one message on a stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Player    string      `json:"player,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one open stream. Player "" watches every player.
type Client struct {
	ID           string
	Player       string
	EventChannel chan Event
	EventFilter  map[string]bool
}

func (c *Client) accepts(eventType string) bool {
	return c.EventFilter == nil || c.EventFilter[eventType]
}

// Hub fans bus events out to stream clients. Clients are indexed by player so a
// step reveal only touches that player's streams and the unscoped watchers.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	byPlayer map[string]map[string]*Client
	watchers map[string]*Client
	closed   bool

	queue    chan Event
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	dropped  atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		byPlayer: make(map[string]map[string]*Client),
		watchers: make(map[string]*Client),
		queue:    make(chan Event, BroadcastBufferSize),
		shutdown: make(chan struct{}),
	}
}

// Start launches the delivery loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.deliverLoop()
}

// Stop ends delivery and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		for id := range h.clients {
			h.removeLocked(id)
		}
		h.closed = true
	})
}

func (h *Hub) deliverLoop() {
	defer h.wg.Done()
	for {
		select {
		case evt := <-h.queue:
			h.deliver(evt)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) deliver(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	send := func(c *Client) {
		if !c.accepts(evt.Type) {
			return
		}
		select {
		case c.EventChannel <- evt:
		default:
			h.dropped.Add(1)
			logger.Warn(LogMsgEventDropped, "client_id", c.ID, "event_type", evt.Type)
		}
	}

	if evt.Player == "" {
		for _, c := range h.clients {
			send(c)
		}
		return
	}
	for _, c := range h.byPlayer[evt.Player] {
		send(c)
	}
	for _, c := range h.watchers {
		send(c)
	}
}

// Register opens a stream for player, limited to eventTypes when non-empty.
// After Stop the returned client's channel is already closed.
func (h *Hub) Register(player string, eventTypes []string) *Client {
	c := &Client{
		ID:           uuid.NewString(),
		Player:       player,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		c.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			c.EventFilter[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.EventChannel)
		return c
	}

	h.clients[c.ID] = c
	if player == "" {
		h.watchers[c.ID] = c
	} else {
		if h.byPlayer[player] == nil {
			h.byPlayer[player] = make(map[string]*Client)
		}
		h.byPlayer[player][c.ID] = c
	}
	return c
}

// Unregister closes the client's channel; unknown ids are ignored
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(clientID)
}

func (h *Hub) removeLocked(id string) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	delete(h.watchers, id)
	if set := h.byPlayer[c.Player]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(h.byPlayer, c.Player)
		}
	}
	close(c.EventChannel)
}

// Broadcast queues an event without blocking the publisher. A full queue counts as a drop.
func (h *Hub) Broadcast(eventType, player string, payload interface{}) {
	evt := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Player:    player,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.queue <- evt:
	default:
		h.dropped.Add(1)
		logger.Warn(LogMsgEventDropped, "event_type", eventType, "player", player)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PlayerCount is the number of distinct players with an open stream
func (h *Hub) PlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byPlayer)
}

// Dropped counts deliveries skipped on a full buffer
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// FormatSSEMessage renders evt in text/event-stream framing
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("encode sse event %s: %w", evt.Type, err)
	}
	return []byte(fmt.Sprintf("id: %s\nevent: %s\ndata: %s\n\n", evt.ID, evt.Type, data)), nil
}
