package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const feedChannel = "case_feed"

// Hub fans processed case records out to connected dashboard clients. The
// feed is broadcast-only; there is no per-client targeting. Redis relays the
// feed across instances when configured.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Feed client connected", map[string]interface{}{"client_id": client.Id})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Feed client disconnected", map[string]interface{}{"client_id": client.Id})
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastCase pushes one terminal case record to every local client and
// relays it to sibling instances through Redis.
func (h *Hub) BroadcastCase(record *entity.CaseRecord) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "case",
		"data": record,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize case for feed", map[string]interface{}{
			"case_id": record.CaseId,
			"error":   err.Error(),
		})
		return
	}

	h.deliverLocal(data)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), feedChannel, data)
	}
}

func (h *Hub) deliverLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop the connection rather than the feed. Only
			// the unregister branch closes Send, so a racing disconnect from
			// the read pump cannot close it a second time.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, feedChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		payload := []byte(msg.Payload)
		if !json.Valid(payload) {
			log.Printf("Redis feed msg is not valid JSON, dropping")
			continue
		}
		h.deliverLocal(payload)
	}
}
