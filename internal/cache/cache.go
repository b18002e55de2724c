// Package cache provides a SQLite-backed snapshot of the most recent
// notifications. It exists only for warm starts: a panel seeded from the
// cache shows last-known state while the first fetch is in flight. It is
// not a durability or offline layer; the first replace fetch overwrites
// whatever was seeded.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/biponi/notify/internal/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notifications (
	id          TEXT PRIMARY KEY,
	subject     TEXT NOT NULL,
	message     TEXT NOT NULL,
	topic       TEXT NOT NULL,
	priority    TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	unread      INTEGER NOT NULL,
	read_at     TEXT NOT NULL DEFAULT '',
	action_url  TEXT NOT NULL DEFAULT '',
	action_text TEXT NOT NULL DEFAULT '',
	data        TEXT NOT NULL DEFAULT '',
	cached_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at DESC);
`

// Cache is the SQLite-backed notification snapshot.
type Cache struct {
	db *sql.DB
}

// Open opens (and initializes) the cache at the provided path.
func Open(dbPath string) (*Cache, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("cache: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("cache: create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cache: open db: %w", err)
	}
	c := &Cache{db: db}
	if err := c.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying SQLite connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) init() error {
	if _, err := c.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("cache: set busy timeout: %w", err)
	}
	if _, err := c.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("cache: create schema: %w", err)
	}
	return nil
}

// Save replaces the cached window with the given notifications, keeping
// at most limit entries (newest first).
func (c *Cache) Save(notifications []domain.Notification, limit int) error {
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("cache: begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM notifications"); err != nil {
		return fmt.Errorf("cache: clear previous window: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO notifications
			(id, subject, message, topic, priority, created_at, unread, read_at, action_url, action_text, data, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cache: prepare insert: %w", err)
	}
	defer stmt.Close()

	cachedAt := time.Now().UTC().Format(time.RFC3339)
	for i := range notifications {
		n := &notifications[i]
		unread := 0
		if n.Unread {
			unread = 1
		}
		readAt := ""
		if n.ReadAt != nil {
			readAt = n.ReadAt.UTC().Format(time.RFC3339)
		}
		_, err := stmt.Exec(
			n.ID, n.Subject, n.Message, n.Topic, n.Priority.String(),
			n.CreatedAt.UTC().Format(time.RFC3339Nano), unread, readAt,
			n.ActionURL, n.ActionText, encodeData(n.Data), cachedAt,
		)
		if err != nil {
			return fmt.Errorf("cache: insert %s: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache: commit save: %w", err)
	}
	return nil
}

// Load returns up to limit cached notifications, newest first.
func (c *Cache) Load(limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := c.db.Query(`
		SELECT id, subject, message, topic, priority, created_at, unread, read_at, action_url, action_text, data
		FROM notifications
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("cache: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var priority, createdAt, readAt, data string
		var unread int
		err := rows.Scan(&n.ID, &n.Subject, &n.Message, &n.Topic, &priority,
			&createdAt, &unread, &readAt, &n.ActionURL, &n.ActionText, &data)
		if err != nil {
			return nil, fmt.Errorf("cache: scan row: %w", err)
		}
		n.Priority = domain.ParsePriority(priority)
		n.Unread = unread != 0
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			n.CreatedAt = ts
		}
		if readAt != "" {
			if ts, err := time.Parse(time.RFC3339, readAt); err == nil {
				n.ReadAt = &ts
			}
		}
		n.Data = decodeData(data)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache: iterate rows: %w", err)
	}
	return out, nil
}

func encodeData(data map[string]string) string {
	if len(data) == 0 {
		return ""
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodeData(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var data map[string]string
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}
