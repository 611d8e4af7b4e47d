// Package messaging pushes live metric updates to connected dashboard
// clients over websockets.
package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Event is the envelope sent to every connected dashboard client.
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types emitted by the metric services.
const (
	EventFollowersUpdated = "followers.updated"
	EventOverviewUpdated  = "overview.updated"
	EventFollowersSynced  = "followers.synced"
)

// Client is a single connected dashboard websocket.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Broadcaster fans metric update events out to every connected client.
// Register, Unregister and Broadcast are safe to call from any goroutine;
// the main loop in Run owns the client set.
type Broadcaster struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan Event
	done       chan struct{}
	closeOnce  sync.Once
	logger     *logging.ChanneledLogger
}

// NewBroadcaster creates a broadcaster. Run must be started as a goroutine
// before clients connect.
func NewBroadcaster(logger *logging.ChanneledLogger) *Broadcaster {
	return &Broadcaster{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run is the broadcaster's main loop.
func (b *Broadcaster) Run() {
	for {
		select {
		case client := <-b.register:
			b.clients[client] = true
			if b.logger != nil {
				b.logger.Live().Info("Dashboard client connected", "clients", len(b.clients))
			}

		case client := <-b.unregister:
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			if b.logger != nil {
				b.logger.Live().Info("Dashboard client disconnected", "clients", len(b.clients))
			}

		case event := <-b.events:
			message, err := json.Marshal(event)
			if err != nil {
				if b.logger != nil {
					b.logger.Live().Error("Failed to marshal live event", "type", event.Type, "error", err)
				}
				continue
			}
			for client := range b.clients {
				select {
				case client.Send <- message:
				default:
					// Slow client; drop it rather than block the loop.
					delete(b.clients, client)
					close(client.Send)
				}
			}

		case <-b.done:
			for client := range b.clients {
				delete(b.clients, client)
				close(client.Send)
			}
			return
		}
	}
}

// Register queues a client for registration.
func (b *Broadcaster) Register(client *Client) {
	select {
	case b.register <- client:
	case <-b.done:
	}
}

// Unregister queues a client for removal.
func (b *Broadcaster) Unregister(client *Client) {
	select {
	case b.unregister <- client:
	case <-b.done:
	}
}

// Broadcast queues an event for delivery to every connected client.
// Events are dropped when the queue is full.
func (b *Broadcaster) Broadcast(eventType string, payload any) {
	event := Event{Type: eventType, Payload: payload, Timestamp: time.Now().UTC()}
	select {
	case b.events <- event:
	default:
		if b.logger != nil {
			b.logger.Live().Warn("Live event queue full, dropping event", "type", eventType)
		}
	}
}

// Stop terminates the main loop and disconnects every client.
func (b *Broadcaster) Stop() {
	b.closeOnce.Do(func() { close(b.done) })
}

// WritePump drains the client's send channel onto the websocket and keeps
// the connection alive with pings. Runs as one goroutine per client.
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

// ReadPump consumes (and discards) client frames so pongs are processed,
// and unregisters the client when the connection drops.
func (c *Client) ReadPump(b *Broadcaster) {
	defer func() {
		b.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
