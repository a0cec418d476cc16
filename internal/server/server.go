package server

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shelterrights/shelterrights-api/internal/stats"
	"go.uber.org/zap"
)

// Assistant answers one question asked over a session. userId is the
// authenticated caller; the implementation decides what to persist.
type Assistant interface {
	Answer(ctx context.Context, userId uuid.UUID, state, message string) (string, error)
}

// Hub tracks the connected assistant sessions.
type Hub struct {
	log            *zap.Logger
	assistant      Assistant
	stats          stats.StatsProvider
	clients        map[*Client]struct{}
	clientsLock    sync.Mutex
	registerChan   chan *Client
	deRegisterChan chan *Client
	stop           chan struct{}
	stopOnce       sync.Once
	done           chan struct{}
}

func NewHub(logger *zap.Logger, assistant Assistant, su stats.StatsProvider) *Hub {
	su.RegisterMetric(stats.ActiveSessions)
	su.RegisterMetric(stats.TotalSessions)
	su.RegisterMetric(stats.AssistantMessages)

	return &Hub{
		log:            logger,
		assistant:      assistant,
		stats:          su,
		clients:        make(map[*Client]struct{}),
		registerChan:   make(chan *Client),
		deRegisterChan: make(chan *Client),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.registerChan:
			h.log.Debug("adding session", zap.String("user_id", client.userId.String()))
			h.addClient(client)
		case client := <-h.deRegisterChan:
			h.log.Debug("removing session", zap.String("user_id", client.userId.String()))
			h.removeClient(client)
		case <-h.stop:
			h.log.Info("shutting down assistant sessions", zap.Int("sessions", h.ClientCount()))
			for _, c := range h.getClients() {
				c.stopClient()
				h.removeClient(c)
			}

			close(h.done)
			return
		}
	}
}

// RegisterClient hands a new session to the hub. It reports false when the
// hub has already shut down.
func (h *Hub) RegisterClient(c *Client) bool {
	select {
	case h.registerChan <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) DeRegisterClient(c *Client) {
	select {
	case h.deRegisterChan <- c:
	case <-h.done:
	}
}

func (h *Hub) addClient(c *Client) {
	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()

	h.clients[c] = struct{}{}
	h.stats.Incr(stats.ActiveSessions)
	h.stats.Incr(stats.TotalSessions)
}

func (h *Hub) removeClient(c *Client) {
	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		h.stats.Decr(stats.ActiveSessions)
	}
}

func (h *Hub) getClients() []*Client {
	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	return clients
}

func (h *Hub) ClientCount() int {
	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()
	return len(h.clients)
}

// Shutdown stops every session and waits for the hub loop to exit. It is
// safe to call more than once.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.stopOnce.Do(func() {
		h.log.Info("received shutdown signal")
		close(h.stop)
	})

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
