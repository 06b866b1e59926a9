// Package cart owns the ordered collection of cart lines for one session
// and its durable copy in storage.
package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"flamegold-ordering/internal/domain"
)

// Storage persists the full line list under one key. Load returns an
// empty list, not an error, when nothing (or nothing readable) is stored.
type Storage interface {
	Load(ctx context.Context, key string) ([]domain.CartLine, error)
	Save(ctx context.Context, key string, lines []domain.CartLine) error
	Delete(ctx context.Context, key string) error
}

// Store holds one session's cart. Every component that reads or mutates
// the cart gets a handle to the same Store; mutations notify subscribers
// and write through to storage. A storage write failure keeps the
// in-memory state (last writer wins across tabs is accepted).
type Store struct {
	mu          sync.Mutex
	key         string
	storage     Storage
	logger      *log.Logger
	lines       []domain.CartLine
	visible     bool
	subscribers []func()
}

// NewStore builds a Store for the session key, loading any previously
// persisted lines. An unreadable stored cart starts empty instead of
// failing.
func NewStore(ctx context.Context, storage Storage, key string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{key: key, storage: storage, logger: logger}
	lines, err := storage.Load(ctx, key)
	if err != nil {
		logger.Printf("cart store: load key=%s error=%v", key, err)
		lines = nil
	}
	s.lines = lines
	return s
}

// Subscribe registers a callback invoked after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Add appends a new priced line for the item and opens the cart panel.
// Identical additions never merge; each call makes its own line.
func (s *Store) Add(ctx context.Context, item domain.MenuItem, quantity int, customizations []domain.CartLineCustomization) (domain.CartLine, error) {
	if quantity <= 0 {
		return domain.CartLine{}, errors.New("quantity must be positive")
	}

	unit := item.Price
	for _, c := range customizations {
		unit += c.ExtraPrice
	}
	line := domain.CartLine{
		ID:             uuid.NewString(),
		MenuItemID:     item.ID,
		Name:           item.Name,
		Price:          item.Price,
		Quantity:       quantity,
		Customizations: customizations,
		TotalPrice:     unit * float64(quantity),
		ImageURL:       item.ImageURL,
	}

	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.visible = true
	s.persist(ctx)
	s.mu.Unlock()

	s.notify()
	return line, nil
}

// Remove deletes the line with the given ID. Removing an absent line is a
// no-op.
func (s *Store) Remove(ctx context.Context, lineID string) {
	s.mu.Lock()
	removed := s.removeLocked(ctx, lineID)
	s.mu.Unlock()
	if removed {
		s.notify()
	}
}

// UpdateQuantity sets a line's quantity, scaling its total so the per-unit
// price is preserved. The original unit price is not stored separately, so
// the new total is derived from total/quantity rather than recomputed from
// the item and customizations. Quantities at or below zero remove the line.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, lineID)
		return
	}

	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].ID != lineID {
			continue
		}
		line := &s.lines[i]
		line.TotalPrice = line.TotalPrice / float64(line.Quantity) * float64(quantity)
		line.Quantity = quantity
		changed = true
		break
	}
	if changed {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.persist(ctx)
	s.mu.Unlock()
	s.notify()
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Subtotal is the sum of all line totals, always derived from the live
// line list.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, l := range s.lines {
		sum += l.TotalPrice
	}
	return sum
}

// ItemCount is the sum of all line quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

func (s *Store) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// SetVisible toggles the cart panel flag. Visibility is UI state and is
// not persisted.
func (s *Store) SetVisible(open bool) {
	s.mu.Lock()
	s.visible = open
	s.mu.Unlock()
	s.notify()
}

func (s *Store) removeLocked(ctx context.Context, lineID string) bool {
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

// persist writes the current lines through to storage. Callers hold the
// lock.
func (s *Store) persist(ctx context.Context) {
	if err := s.storage.Save(ctx, s.key, s.lines); err != nil {
		s.logger.Printf("cart store: save key=%s error=%v", s.key, err)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
