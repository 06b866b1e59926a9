// Package session hands out the per-session cart store and checkout
// aggregator. Each browser session owns exactly one of each.
package session

import (
	"context"
	"log"
	"sync"

	"flamegold-ordering/internal/cart"
	"flamegold-ordering/internal/checkout"
)

// Session bundles the mutable per-session state.
type Session struct {
	Cart     *cart.Store
	Checkout *checkout.Aggregator
}

// Manager lazily builds sessions on first use. The cart store loads its
// persisted lines at that point; everything else starts fresh.
type Manager struct {
	storage cart.Storage
	orders  checkout.OrderCreator
	logger  *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(storage cart.Storage, orders checkout.OrderCreator, logger *log.Logger) *Manager {
	return &Manager{
		storage:  storage,
		orders:   orders,
		logger:   logger,
		sessions: map[string]*Session{},
	}
}

// Get returns the session for id, creating it on first touch.
func (m *Manager) Get(ctx context.Context, id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	store := cart.NewStore(ctx, m.storage, id, m.logger)
	s := &Session{
		Cart:     store,
		Checkout: checkout.NewAggregator(store, m.orders),
	}
	m.sessions[id] = s
	return s
}

// Reset drops a session's in-memory state; its persisted cart survives
// and reloads on the next Get.
func (m *Manager) Reset(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
