// Package ws carries the display sync protocol over WebSocket: the owner
// serves /ws/display and each connected display becomes a snapshot sink.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/queuebot/internal/models"
	"github.com/KirkDiggler/queuebot/internal/services/display"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var (
	// ErrClientClosed is returned when sending to a disconnected display
	ErrClientClosed = errors.New("display connection closed")

	// ErrClientSlow is returned when a display is not reading fast enough
	ErrClientSlow = errors.New("display send buffer full")
)

// Registry is where connected displays are registered as sinks
type Registry interface {
	Register(sink display.Sink)
	Unregister(id string)
}

// Hub accepts display connections on the owner side
type Hub struct {
	registry  Registry
	requester display.SnapshotRequester
	upgrader  websocket.Upgrader
	nextID    atomic.Uint64
}

// HubConfig holds configuration for the hub
type HubConfig struct {
	Registry  Registry
	Requester display.SnapshotRequester
}

// NewHub creates a hub that registers displays with cfg.Registry and
// forwards their snapshot requests to cfg.Requester
func NewHub(cfg *HubConfig) (*Hub, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Registry == nil {
		return nil, errors.New("registry cannot be nil")
	}

	if cfg.Requester == nil {
		return nil, errors.New("snapshot requester cannot be nil")
	}

	return &Hub{
		registry:  cfg.Registry,
		requester: cfg.Requester,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

// HandleDisplay upgrades the request and serves one display until it disconnects
func (h *Hub) HandleDisplay(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade display connection: %v", err)
		return
	}

	client := &client{
		id:   fmt.Sprintf("ws-%d", h.nextID.Add(1)),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	h.registry.Register(client)

	go client.writePump()
	client.readPump(h.requester)

	h.registry.Unregister(client.id)
}

// client is one connected display. It implements display.Sink.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

// ID implements display.Sink
func (c *client) ID() string {
	return c.id
}

// Send implements display.Sink. It queues the snapshot without blocking.
func (c *client) Send(ctx context.Context, snapshot *models.Snapshot) error {
	data, err := json.Marshal(models.SyncMessage{
		Type:     models.SyncMessageQueueSnapshot,
		Snapshot: snapshot,
	})
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrClientSlow
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// readPump handles snapshot requests until the connection drops
func (c *client) readPump(requester display.SnapshotRequester) {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg models.SyncMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Display %s read error: %v", c.id, err)
			}
			return
		}

		switch msg.Type {
		case models.SyncMessageRequestSnapshot:
			if err := requester.RequestSnapshot(context.Background()); err != nil {
				log.Printf("Failed to answer snapshot request from %s: %v", c.id, err)
			}
		default:
			log.Printf("Ignoring %q message from display %s", msg.Type, c.id)
		}
	}
}

// writePump sends queued snapshots and keeps the connection alive
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
