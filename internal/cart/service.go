package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Sehnya/photo-web-demo/internal/storage"
	"golang.org/x/sync/singleflight"
)

// Service owns the persisted cart. Every mutation rewrites the full
// item list under the cart slot; reads go through singleflight so
// concurrent handlers hitting a cold store issue one load. Mutations
// serialize on the service mutex so in-process writers never lose an
// update; across processes the slot stays last-writer-wins.
type Service struct {
	store storage.Store
	mu    sync.Mutex
	sfg   singleflight.Group
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Load returns the current cart. A missing or corrupt slot yields an
// empty cart, never an error; that matches how the original treated
// unreadable local storage.
func (s *Service) Load(ctx context.Context) []Item {
	v, _, _ := s.sfg.Do(storage.KeyCart, func() (interface{}, error) {
		data, err := s.store.Get(ctx, storage.KeyCart)
		if err != nil {
			if !errors.Is(err, storage.ErrKeyNotFound) {
				log.Printf("cart load error: %v", err)
			}
			return []Item{}, nil
		}

		var items []Item
		if err := json.Unmarshal(data, &items); err != nil {
			log.Printf("cart slot corrupt, resetting: %v", err)
			return []Item{}, nil
		}
		return items, nil
	})

	// singleflight shares one result across coalesced callers; hand
	// each its own copy so later edits never alias.
	shared := v.([]Item)
	items := make([]Item, len(shared))
	copy(items, shared)
	return items
}

// AddItem appends pkg with qty 1, or increments the qty of an existing
// line with the same id. It always succeeds apart from storage errors.
func (s *Service) AddItem(ctx context.Context, id, title string, price float64) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.Load(ctx)

	found := false
	for i := range items {
		if items[i].ID == id {
			items[i].Qty++
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{ID: id, Title: title, Price: price, Qty: 1})
	}

	if err := s.persist(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem drops the matching line. Removing an absent id is a no-op.
func (s *Service) RemoveItem(ctx context.Context, id string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.Load(ctx)

	for i, item := range items {
		if item.ID == id {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}

	if err := s.persist(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ChangeQty adds delta to the line's quantity, clamped to a minimum of
// 1. Dropping a line entirely is RemoveItem's job.
func (s *Service) ChangeQty(ctx context.Context, id string, delta int) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.Load(ctx)

	for i := range items {
		if items[i].ID == id {
			items[i].Qty += delta
			if items[i].Qty < 1 {
				items[i].Qty = 1
			}
			break
		}
	}

	if err := s.persist(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx, []Item{})
}

func (s *Service) persist(ctx context.Context, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := s.store.Set(ctx, storage.KeyCart, data); err != nil {
		return fmt.Errorf("persist cart failed: %w", err)
	}
	return nil
}
