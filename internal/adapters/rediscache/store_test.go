package rediscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novabrowser/nova/internal/adapters/rediscache"
	"github.com/novabrowser/nova/pkg/ports/tests"
)

func newTestStore(t *testing.T) (*rediscache.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return rediscache.NewFromClient(client), mr
}

func TestRedisCacheContract(t *testing.T) {
	store, _ := newTestStore(t)
	tests.RunCacheStoreContract(t, store)
}

func TestEntriesExpireViaRedisTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	require.NoError(t, store.Set(ctx, "page", "body", 5*time.Minute))

	_, ok, err := store.Get(ctx, "page")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(5*time.Minute + time.Second)

	_, ok, err = store.Get(ctx, "page")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	a := rediscache.NewFromClient(client, rediscache.WithPrefix("a:"))
	b := rediscache.NewFromClient(client, rediscache.WithPrefix("b:"))

	require.NoError(t, a.Set(ctx, "page", "from-a", time.Hour))
	require.NoError(t, b.Set(ctx, "page", "from-b", time.Hour))

	// Purging one prefix leaves the other untouched.
	require.NoError(t, a.Purge(ctx))

	_, ok, err := a.Get(ctx, "page")
	require.NoError(t, err)
	assert.False(t, ok)

	body, ok, err := b.Get(ctx, "page")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "from-b", body)
}
