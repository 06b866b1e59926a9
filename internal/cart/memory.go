package cart

import (
	"context"
	"sync"

	"flamegold-ordering/internal/domain"
)

// MemoryStorage is a process-local Storage used by tests and by
// deployments that run without redis.
type MemoryStorage struct {
	mu    sync.Mutex
	carts map[string][]domain.CartLine
	saves int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: map[string][]domain.CartLine{}}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.carts[key]
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]domain.CartLine, len(lines))
	copy(stored, lines)
	m.carts[key] = stored
	m.saves++
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, key)
	return nil
}

// SaveCount reports how many writes have happened, for asserting the
// write-after-every-mutation contract in tests.
func (m *MemoryStorage) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
