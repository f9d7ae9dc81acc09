package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/Sehnya/photo-web-demo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(storage.NewMemoryStore())
}

func TestAddItem_NewItem(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	items, err := s.AddItem(ctx, "headshots", "PROFESSIONAL HEADSHOTS", 850)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "headshots", items[0].ID)
	assert.Equal(t, 1, items[0].Qty)
}

func TestAddItem_ConcurrentIncrementsAreNotLost(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddItem(ctx, "headshots", "PROFESSIONAL HEADSHOTS", 850)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items := s.Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, n, items[0].Qty)
}

func TestAddItem_DuplicateIncrementsQty(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "headshots", "PROFESSIONAL HEADSHOTS", 850)
	require.NoError(t, err)
	items, err := s.AddItem(ctx, "headshots", "PROFESSIONAL HEADSHOTS", 850)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "classic", "CLASSIC PORTRAITS", 1200)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, "headshots", "PROFESSIONAL HEADSHOTS", 850)
	require.NoError(t, err)
	items, err := s.AddItem(ctx, "classic", "CLASSIC PORTRAITS", 1200)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "classic", items[0].ID)
	assert.Equal(t, "headshots", items[1].ID)
}

func TestRemoveItem(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "headshots", "PROFESSIONAL HEADSHOTS", 850)
	require.NoError(t, err)

	items, err := s.RemoveItem(ctx, "headshots")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "headshots", "PROFESSIONAL HEADSHOTS", 850)
	require.NoError(t, err)

	items, err := s.RemoveItem(ctx, "branding")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestChangeQty_ClampsAtOne(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "headshots", "PROFESSIONAL HEADSHOTS", 850)
	require.NoError(t, err)

	items, err := s.ChangeQty(ctx, "headshots", -100)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Qty)
}

func TestChangeQty_Increments(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "headshots", "PROFESSIONAL HEADSHOTS", 850)
	require.NoError(t, err)

	items, err := s.ChangeQty(ctx, "headshots", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, items[0].Qty)
}

func TestLoad_CorruptSlotYieldsEmptyCart(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), storage.KeyCart, []byte("not json")))

	s := NewService(store)
	items := s.Load(context.Background())
	assert.Empty(t, items)
}

func TestLoad_MissingSlotYieldsEmptyCart(t *testing.T) {
	s := newTestService()
	assert.Empty(t, s.Load(context.Background()))
}

func TestLoad_RoundTripsPersistedCart(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	first := NewService(store)
	_, err := first.AddItem(ctx, "creative", "CREATIVE PORTRAITS", 1500)
	require.NoError(t, err)

	// A fresh service over the same store sees the persisted cart
	second := NewService(store)
	items := second.Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "creative", items[0].ID)
	assert.Equal(t, 1500.0, items[0].Price)
}
