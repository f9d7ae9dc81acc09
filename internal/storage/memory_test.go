package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.Set(ctx, KeyCart, []byte(`[{"id":"headshots"}]`))
	require.NoError(t, err)

	value, err := s.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"headshots"}]`, string(value))
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeySession, []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, KeySession))

	_, err := s.Get(ctx, KeySession)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is not an error
	assert.NoError(t, s.Delete(ctx, KeySession))
}

func TestMemoryStore_CopiesValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	original := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "k", original))
	original[0] = 'X'

	value, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(value))
}
