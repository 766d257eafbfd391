// Package history records resolved lookups in a local SQLite database so
// recent films can be listed again.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"filmwatch/internal/config"
	"filmwatch/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS lookups (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	url         TEXT NOT NULL DEFAULT '',
	outcome     TEXT NOT NULL,
	platform    TEXT NOT NULL DEFAULT '',
	looked_up_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS lookups_time ON lookups (looked_up_at DESC);
`

// Store is a lookup history backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// One writer at a time keeps SQLite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// OpenDefault opens the store at config.HistoryPath.
func OpenDefault() (*Store, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a presentation. NoTitle presentations are not recorded.
func (s *Store) Record(ctx context.Context, p media.Presentation) (media.HistoryEntry, error) {
	if p.Outcome == media.NoTitle {
		return media.HistoryEntry{}, nil
	}

	entry := media.HistoryEntry{
		ID:         uuid.NewString(),
		Title:      p.Title,
		URL:        p.URL,
		Outcome:    p.Outcome,
		Platform:   p.Platform,
		LookedUpAt: s.now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (id, title, url, outcome, platform, looked_up_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Title, entry.URL, entry.Outcome.String(), entry.Platform, entry.LookedUpAt.UnixNano(),
	)
	if err != nil {
		return media.HistoryEntry{}, fmt.Errorf("recording lookup: %w", err)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) Recent(ctx context.Context, limit int) ([]media.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, url, outcome, platform, looked_up_at FROM lookups ORDER BY looked_up_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []media.HistoryEntry
	for rows.Next() {
		var (
			e       media.HistoryEntry
			outcome string
			nanos   int64
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.URL, &outcome, &e.Platform, &nanos); err != nil {
			return nil, fmt.Errorf("reading history: %w", err)
		}
		if e.Outcome, err = media.ParseOutcome(outcome); err != nil {
			continue // Skip rows written by a newer version
		}
		e.LookedUpAt = time.Unix(0, nanos).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return entries, nil
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lookups`)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}

// FormatForDisplay creates one display line per entry.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	var items []string
	for _, e := range entries {
		display := e.LookedUpAt.Local().Format("2006-01-02 15:04") + "  " + e.Title
		switch e.Outcome {
		case media.Embedded, media.SpecialCased:
			if e.Platform != "" {
				display += " [" + e.Platform + "]"
			} else {
				display += " [embedded]"
			}
		case media.DirectLink:
			display += " [link]"
		case media.NoURL:
			display += " [not available]"
		}
		items = append(items, display)
	}
	return items
}
