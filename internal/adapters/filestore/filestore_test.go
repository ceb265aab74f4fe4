package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novabrowser/nova/internal/adapters/filestore"
	"github.com/novabrowser/nova/pkg/ports"
	"github.com/novabrowser/nova/pkg/ports/tests"
)

func TestHistoryContract(t *testing.T) {
	store, err := filestore.NewHistory(t.TempDir())
	require.NoError(t, err)
	tests.RunHistoryStoreContract(t, store)
}

func TestBookmarksContract(t *testing.T) {
	store, err := filestore.NewBookmarks(t.TempDir())
	require.NoError(t, err)
	tests.RunBookmarkStoreContract(t, store)
}

func TestKVContract(t *testing.T) {
	store, err := filestore.NewKV(t.TempDir())
	require.NoError(t, err)
	tests.RunKVStoreContract(t, store)
}

func TestHistorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := filestore.NewHistory(dir)
	require.NoError(t, err)
	require.NoError(t, store.RecordVisit(ctx, "https://example.com", "Example"))
	require.NoError(t, store.RecordVisit(ctx, "https://example.com", "Example"))

	reopened, err := filestore.NewHistory(dir)
	require.NoError(t, err)
	visits, err := reopened.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, 2, visits[0].VisitCount)
}

func TestHistoryCapDropsOldest(t *testing.T) {
	ctx := context.Background()
	store, err := filestore.NewHistory(t.TempDir())
	require.NoError(t, err)

	for i := 0; i < 5002; i++ {
		require.NoError(t, store.RecordVisit(ctx, "nova://"+strconv.Itoa(i), "t"))
	}

	visits, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, visits, 5000)
	assert.Equal(t, "nova://2", visits[0].URL)
	assert.Equal(t, "nova://5001", visits[len(visits)-1].URL)
}

func TestKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := filestore.NewKV(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "volume", 0.8))

	reopened, err := filestore.NewKV(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "volume")
	require.NoError(t, err)
	assert.Equal(t, 0.8, got)
}

func TestCorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.json"), []byte("{not json"), 0o644))

	_, err := filestore.NewHistory(dir)
	assert.Error(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := filestore.NewBookmarks(dir)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, ports.Bookmark{URL: "nova://one", Title: "One", AddedAt: time.Now()}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bookmarks.json", entries[0].Name())
}
