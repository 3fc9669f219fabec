package orderapi

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/goliatone/go-pizzaform/pkg/order"
)

// ErrOrderNotFound is returned by stores when an id is unknown.
var ErrOrderNotFound = errors.New("orderapi: order not found")

// Store persists accepted orders.
type Store interface {
	Save(ctx context.Context, placed order.Placed) error
	Get(ctx context.Context, id string) (order.Placed, error)
}

// Lister is implemented by stores that can list recent orders.
type Lister interface {
	Recent(ctx context.Context, limit int) ([]order.Placed, error)
}

// MemoryStore keeps orders in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]order.Placed
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Lister = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]order.Placed)}
}

func (s *MemoryStore) Save(ctx context.Context, placed order.Placed) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	placed.Draft = placed.Draft.Clone()
	s.orders[placed.ID] = placed
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (order.Placed, error) {
	if err := ctx.Err(); err != nil {
		return order.Placed{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	placed, ok := s.orders[id]
	if !ok {
		return order.Placed{}, ErrOrderNotFound
	}
	placed.Draft = placed.Draft.Clone()
	return placed, nil
}

// Recent returns up to limit orders, newest first. Ties are ordered by id.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]order.Placed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]order.Placed, 0, len(s.orders))
	for _, placed := range s.orders {
		placed.Draft = placed.Draft.Clone()
		out = append(out, placed)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
