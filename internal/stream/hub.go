package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans captured fixes out to websocket subscribers, locally and across
// instances via Redis pub/sub.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	SessionID string
	Send      chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(sessionID string) *Client {
	client := &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = map[*Client]struct{}{}
	}
	h.clients[sessionID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sessionClients, ok := h.clients[client.SessionID]; ok {
		delete(sessionClients, client)
		if len(sessionClients) == 0 {
			delete(h.clients, client.SessionID)
		}
	}
	close(client.Send)
}

// Broadcast fans a captured fix out to the session's subscribers. With Redis
// configured it only publishes; the pattern subscription delivers to local
// clients on every instance, this one included, so nothing arrives twice.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	if h.redis == nil {
		h.deliverLocal(sessionID, payload)
		return
	}

	err := h.redis.Publish(context.Background(), redisChannel(sessionID), payload).Err()
	if err != nil {
		log.Printf("redis publish error: %v", err)
	}
}

// deliverLocal sends to subscribers while holding the read lock, so a
// concurrent Unregister cannot close a channel mid-send.
func (h *Hub) deliverLocal(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[sessionID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "geolog:*:fixes")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliverLocal(sessionIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(sessionID string) string {
	return "geolog:" + sessionID + ":fixes"
}

func sessionIDFromChannel(ch string) string {
	// geolog:{session}:fixes
	const prefix = "geolog:"
	const suffix = ":fixes"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
