package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novabrowser/nova/internal/adapters/sqlstore"
	"github.com/novabrowser/nova/pkg/ports/tests"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlstore.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestHistoryContract(t *testing.T) {
	store, err := sqlstore.NewHistory(openTestDB(t))
	require.NoError(t, err)
	tests.RunHistoryStoreContract(t, store)
}

func TestBookmarksContract(t *testing.T) {
	store, err := sqlstore.NewBookmarks(openTestDB(t))
	require.NoError(t, err)
	tests.RunBookmarkStoreContract(t, store)
}

func TestHistorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, err := sqlstore.Open(dir)
	require.NoError(t, err)
	store, err := sqlstore.NewHistory(db)
	require.NoError(t, err)
	require.NoError(t, store.RecordVisit(ctx, "https://example.com", "Example"))
	require.NoError(t, db.Close())

	db, err = sqlstore.Open(dir)
	require.NoError(t, err)
	defer db.Close()
	store, err = sqlstore.NewHistory(db)
	require.NoError(t, err)

	visits, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "https://example.com", visits[0].URL)
	assert.Equal(t, "Example", visits[0].Title)
	assert.False(t, visits[0].VisitedAt.IsZero())
}

func TestBothStoresShareOneDatabase(t *testing.T) {
	db := openTestDB(t)

	_, err := sqlstore.NewHistory(db)
	require.NoError(t, err)
	_, err = sqlstore.NewBookmarks(db)
	require.NoError(t, err)

	// Re-running migrations is a no-op.
	_, err = sqlstore.NewHistory(db)
	require.NoError(t, err)
	_, err = sqlstore.NewBookmarks(db)
	require.NoError(t, err)
}
