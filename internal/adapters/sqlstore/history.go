package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/novabrowser/nova/pkg/ports"
)

// maxHistoryEntries matches the filestore cap.
const maxHistoryEntries = 5000

// History implements ports.HistoryStore on SQLite. Ordering is kept in an
// explicit monotone sequence column rather than timestamps so that rapid
// visits stay strictly ordered.
type History struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistory migrates the visits table and returns the store.
func NewHistory(db *sql.DB) (*History, error) {
	const schema = `
	CREATE TABLE IF NOT EXISTS visits (
		url         TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		visited_at  TEXT NOT NULL,
		visit_count INTEGER NOT NULL,
		seq         INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate visits: %w", err)
	}
	return &History{db: db, now: time.Now}, nil
}

func (h *History) RecordVisit(ctx context.Context, url, title string) error {
	const upsert = `
	INSERT INTO visits (url, title, visited_at, visit_count, seq)
	VALUES (?, ?, ?, 1, (SELECT COALESCE(MAX(seq), 0) + 1 FROM visits))
	ON CONFLICT(url) DO UPDATE SET
		title       = excluded.title,
		visited_at  = excluded.visited_at,
		visit_count = visits.visit_count + 1,
		seq         = excluded.seq`
	if _, err := h.db.ExecContext(ctx, upsert, url, title, formatTime(h.now())); err != nil {
		return fmt.Errorf("record visit: %w", err)
	}

	const trim = `
	DELETE FROM visits WHERE url IN (
		SELECT url FROM visits ORDER BY seq DESC LIMIT -1 OFFSET ?
	)`
	if _, err := h.db.ExecContext(ctx, trim, maxHistoryEntries); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

func (h *History) Recent(ctx context.Context, n int) ([]ports.Visit, error) {
	limit := n
	if limit <= 0 {
		limit = -1 // no limit
	}
	const query = `
	SELECT url, title, visited_at, visit_count
	FROM visits ORDER BY seq DESC LIMIT ?`
	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var visits []ports.Visit
	for rows.Next() {
		var v ports.Visit
		var visitedAt string
		if err := rows.Scan(&v.URL, &v.Title, &visitedAt, &v.VisitCount); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.VisitedAt = parseTime(visitedAt)
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	// The query walks newest-first; callers expect chronological order.
	for i, j := 0, len(visits)-1; i < j; i, j = i+1, j-1 {
		visits[i], visits[j] = visits[j], visits[i]
	}
	return visits, nil
}

func (h *History) Clear(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM visits`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
