package wsapi

import (
	"sync"

	"github.com/trezcool/mahudhurio/core"
)

// Member is one authenticated connection's identity in the roster.
type Member struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Hub is the process-scoped roster of connected clients. Connections are
// keyed by connection id, not user id: the same user may connect more than
// once. Entries are removed on disconnect or error.
type Hub struct {
	mutex   sync.RWMutex
	members map[string]Member
	logger  core.Logger
}

func NewHub(logger core.Logger) *Hub {
	return &Hub{
		members: make(map[string]Member),
		logger:  logger,
	}
}

func (h *Hub) add(connID string, m Member) {
	h.mutex.Lock()
	h.members[connID] = m
	total := len(h.members)
	h.mutex.Unlock()
	h.logger.Info("client connected", map[string]interface{}{"userId": m.UserID, "total": total})
}

func (h *Hub) remove(connID string) {
	h.mutex.Lock()
	m, ok := h.members[connID]
	delete(h.members, connID)
	total := len(h.members)
	h.mutex.Unlock()
	if ok {
		h.logger.Info("client disconnected", map[string]interface{}{"userId": m.UserID, "total": total})
	}
}

// Members returns a snapshot of the roster.
func (h *Hub) Members() []Member {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	members := make([]Member, 0, len(h.members))
	for _, m := range h.members {
		members = append(members, m)
	}
	return members
}

func (h *Hub) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.members)
}
