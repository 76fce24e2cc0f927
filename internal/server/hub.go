package server

import (
	"sync"

	"github.com/Tanno-Finn/pockethero-3/pkg/api"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
)

// Hub держит активные подключения и рассылает им снимки состояния.
// Реализует engine.Broadcaster. Broadcast зовется из горутины игрового
// цикла, регистрация - из HTTP горутин, поэтому карта под мьютексом.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	logger.WithComponent("hub").WithField("clients", len(h.clients)).Info("Client registered")
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
	logger.WithComponent("hub").WithField("clients", len(h.clients)).Info("Client unregistered")
}

// Broadcast шлет снимок всем клиентам. Переполненный канал клиента
// означает, что он не успевает: кадр для него молча пропускается,
// игровой цикл никогда не блокируется на медленном потребителе.
func (h *Hub) Broadcast(resp api.ServerResponse) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.Send <- resp:
		default:
		}
	}
}

// Count - число активных подключений (для debug-эндпоинта)
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
