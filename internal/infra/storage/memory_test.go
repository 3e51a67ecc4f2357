package storage

import (
	"context"
	"sync"
	"testing"

	"megamart/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetRemove(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user", "value"))

	value, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	require.NoError(t, store.Remove(ctx, "user"))
	_, err = store.Get(ctx, "user")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = store.Set(ctx, "shared", "value")
				_, _ = store.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	value, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}
