package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/novabrowser/nova/pkg/ports"
)

// Bookmarks implements ports.BookmarkStore on SQLite.
type Bookmarks struct {
	db *sql.DB
}

// NewBookmarks migrates the bookmarks table and returns the store.
func NewBookmarks(db *sql.DB) (*Bookmarks, error) {
	const schema = `
	CREATE TABLE IF NOT EXISTS bookmarks (
		url      TEXT PRIMARY KEY,
		title    TEXT NOT NULL,
		added_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate bookmarks: %w", err)
	}
	return &Bookmarks{db: db}, nil
}

func (b *Bookmarks) Add(ctx context.Context, mark ports.Bookmark) error {
	const upsert = `
	INSERT INTO bookmarks (url, title, added_at) VALUES (?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET title = excluded.title, added_at = excluded.added_at`
	if _, err := b.db.ExecContext(ctx, upsert, mark.URL, mark.Title, formatTime(mark.AddedAt)); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

func (b *Bookmarks) List(ctx context.Context) ([]ports.Bookmark, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT url, title, added_at FROM bookmarks ORDER BY added_at, url`)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	var marks []ports.Bookmark
	for rows.Next() {
		var mark ports.Bookmark
		var addedAt string
		if err := rows.Scan(&mark.URL, &mark.Title, &addedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		mark.AddedAt = parseTime(addedAt)
		marks = append(marks, mark)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}
	return marks, nil
}

func (b *Bookmarks) Remove(ctx context.Context, url string) error {
	res, err := b.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE url = ?`, url)
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
