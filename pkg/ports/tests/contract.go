// Package tests provides reusable contract suites for the store ports.
// Every adapter runs these against a fresh, empty store so that file, sqlite,
// memory and redis backends agree on the observable semantics.
package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novabrowser/nova/pkg/ports"
)

// RunHistoryStoreContract verifies a HistoryStore implementation. The store
// must be empty when the suite starts.
func RunHistoryStoreContract(t *testing.T, store ports.HistoryStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("record and recent", func(t *testing.T) {
		require.NoError(t, store.RecordVisit(ctx, "nova://a", "A"))
		require.NoError(t, store.RecordVisit(ctx, "nova://b", "B"))
		require.NoError(t, store.RecordVisit(ctx, "nova://c", "C"))

		visits, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, visits, 3)
		assert.Equal(t, "nova://a", visits[0].URL)
		assert.Equal(t, "C", visits[2].Title)
		for _, v := range visits {
			assert.Equal(t, 1, v.VisitCount)
			assert.False(t, v.VisitedAt.IsZero())
		}
	})

	t.Run("revisit bumps count and moves to end", func(t *testing.T) {
		require.NoError(t, store.RecordVisit(ctx, "nova://a", "A again"))

		visits, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, visits, 3, "revisit must not append a duplicate")
		last := visits[len(visits)-1]
		assert.Equal(t, "nova://a", last.URL)
		assert.Equal(t, "A again", last.Title)
		assert.Equal(t, 2, last.VisitCount)
	})

	t.Run("recent is bounded", func(t *testing.T) {
		visits, err := store.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, visits, 1)
		assert.Equal(t, "nova://a", visits[0].URL, "the single entry is the most recent")
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		visits, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, visits)
	})
}

// RunBookmarkStoreContract verifies a BookmarkStore implementation. The store
// must be empty when the suite starts.
func RunBookmarkStoreContract(t *testing.T, store ports.BookmarkStore) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("add and list", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, ports.Bookmark{URL: "nova://one", Title: "One", AddedAt: now}))
		require.NoError(t, store.Add(ctx, ports.Bookmark{URL: "nova://two", Title: "Two", AddedAt: now}))

		marks, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, marks, 2)

		byURL := map[string]ports.Bookmark{}
		for _, b := range marks {
			byURL[b.URL] = b
		}
		assert.Equal(t, "One", byURL["nova://one"].Title)
		assert.Equal(t, "Two", byURL["nova://two"].Title)
	})

	t.Run("re-adding a url replaces the entry", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, ports.Bookmark{URL: "nova://one", Title: "One, renamed", AddedAt: now}))

		marks, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, marks, 2)
		for _, b := range marks {
			if b.URL == "nova://one" {
				assert.Equal(t, "One, renamed", b.Title)
			}
		}
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, "nova://one"))

		marks, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, marks, 1)
		assert.Equal(t, "nova://two", marks[0].URL)
	})

	t.Run("remove absent", func(t *testing.T) {
		err := store.Remove(ctx, "nova://never-added")
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})
}

// RunKVStoreContract verifies a KVStore implementation. The store must be
// empty when the suite starts.
func RunKVStoreContract(t *testing.T, store ports.KVStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "greeting", "hello"))
		require.NoError(t, store.Set(ctx, "count", 42))

		got, err := store.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "hello", got)

		// JSON-backed stores widen ints to float64; only presence is
		// contractual.
		got, err = store.Get(ctx, "count")
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("get absent", func(t *testing.T) {
		_, err := store.Get(ctx, "never-set")
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "greeting", "goodbye"))
		got, err := store.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "goodbye", got)
	})

	t.Run("keys", func(t *testing.T) {
		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, "greeting")
		assert.Contains(t, keys, "count")
	})
}

// RunCacheStoreContract verifies a CacheStore implementation. The store must
// be empty when the suite starts. Expiry timing is adapter-specific and is
// tested per adapter with a controllable clock.
func RunCacheStoreContract(t *testing.T, store ports.CacheStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("miss is not an error", func(t *testing.T) {
		body, ok, err := store.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, body)
	})

	t.Run("set and hit", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "page", `{"version":"1.0"}`, time.Hour))

		body, ok, err := store.Get(ctx, "page")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `{"version":"1.0"}`, body)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "page", "second", time.Hour))

		body, ok, err := store.Get(ctx, "page")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "second", body)
	})

	t.Run("purge", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "other", "x", time.Hour))
		require.NoError(t, store.Purge(ctx))

		_, ok, err := store.Get(ctx, "page")
		require.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = store.Get(ctx, "other")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
