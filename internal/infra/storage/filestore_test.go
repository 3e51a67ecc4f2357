package storage

import (
	"context"
	"testing"

	"megamart/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStoreUnderTest(t *testing.T) repository.KVStore {
	t.Helper()

	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	return store
}

func TestFileStore_SetGetRoundTrip(t *testing.T) {
	store := newFileStoreUnderTest(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "accessToken", "token-1"))

	value, err := store.Get(ctx, "accessToken")
	require.NoError(t, err)
	assert.Equal(t, "token-1", value)
}

func TestFileStore_GetMissingKey(t *testing.T) {
	store := newFileStoreUnderTest(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestFileStore_SetOverwrites(t *testing.T) {
	store := newFileStoreUnderTest(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user", "first"))
	require.NoError(t, store.Set(ctx, "user", "second"))

	value, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestFileStore_KeysWithColonsStayDistinct(t *testing.T) {
	store := newFileStoreUnderTest(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:guest", "guest-items"))
	require.NoError(t, store.Set(ctx, "cart:u-1", "user-items"))

	guest, err := store.Get(ctx, "cart:guest")
	require.NoError(t, err)
	assert.Equal(t, "guest-items", guest)

	user, err := store.Get(ctx, "cart:u-1")
	require.NoError(t, err)
	assert.Equal(t, "user-items", user)
}

func TestFileStore_RemoveIsIdempotent(t *testing.T) {
	store := newFileStoreUnderTest(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user", "value"))
	require.NoError(t, store.Remove(ctx, "user"))
	require.NoError(t, store.Remove(ctx, "user"))

	_, err := store.Get(ctx, "user")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestFileStore_ClearRemovesAllKeys(t *testing.T) {
	store := newFileStoreUnderTest(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user", "a"))
	require.NoError(t, store.Set(ctx, "cart:guest", "b"))

	require.NoError(t, store.Clear(ctx))

	_, err := store.Get(ctx, "user")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
	_, err = store.Get(ctx, "cart:guest")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "refreshToken", "refresh-1"))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	value, err := reopened.Get(ctx, "refreshToken")
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", value)
}
