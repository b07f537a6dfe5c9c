package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"trip-planner-be/internal/constant"
	"trip-planner-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: SessionID -> every client watching it
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication, nil when running alone
	rdb *redis.Client

	// instanceID tags our own redis publications so they are not delivered twice
	instanceID string

	// done is closed when Run returns
	done     chan struct{}
	stopOnce sync.Once

	logger logger.ILogger
}

// clusterMessage is the redis envelope shared between instances.
type clusterMessage struct {
	Origin          string          `json:"origin"`
	TargetSessionID string          `json:"target_session_id"`
	Message         json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		done:       make(chan struct{}),
		logger:     log,
	}
}

// Run processes registrations until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info(constant.ModuleHub, "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// join hands client to Run. It gives up once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave hands client to Run for removal. It gives up once the hub has stopped.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
			client.close()
			break
		}
	}
	if len(h.clients[client.SessionID]) == 0 {
		delete(h.clients, client.SessionID)
		h.logger.Info(constant.ModuleHub, "Session has no more watchers", map[string]interface{}{"session_id": client.SessionID})
	}
}

// Send delivers payload to every local client of sessionID and, when redis
// is configured, to the clients held by other instances.
func (h *Hub) Send(sessionID string, payload []byte) {
	h.deliverLocal(sessionID, payload)

	if h.rdb != nil {
		envelope, err := json.Marshal(clusterMessage{
			Origin:          h.instanceID,
			TargetSessionID: sessionID,
			Message:         payload,
		})
		if err != nil {
			return
		}
		if err := h.rdb.Publish(context.Background(), constant.RedisChannelPlannerEvents, envelope).Err(); err != nil {
			h.logger.Warn(constant.ModuleHub, "Redis publish failed", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}
}

// Watchers returns how many local clients follow sessionID.
func (h *Hub) Watchers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func (h *Hub) deliverLocal(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	// Clients in the map are never closed: remove holds the write lock.
	for _, client := range h.clients[sessionID] {
		if !client.Reply(payload) {
			h.logger.Warn(constant.ModuleHub, "Client Send buffer full, dropping client", map[string]interface{}{"session_id": sessionID})
			go h.leave(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, constant.RedisChannelPlannerEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleClusterMessage([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handleClusterMessage(raw []byte) {
	var payload clusterMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn(constant.ModuleHub, "Redis msg parse error", map[string]interface{}{"error": err.Error()})
		return
	}
	if payload.Origin == h.instanceID || payload.TargetSessionID == "" {
		return
	}
	h.deliverLocal(payload.TargetSessionID, payload.Message)
}
