// Package cache keeps the last known good reminder set in a local SQLite
// database so the display stays populated when the record store is
// unreachable.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"carescreen/internal/reminder"
)

// Store holds a single reminder snapshot; each save replaces the previous
// one in full.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default snapshot database path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".carescreen", "snapshot.db")
}

// Open opens (creating if needed) the snapshot database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshot (
			id          INTEGER PRIMARY KEY CHECK (id = 1),
			captured_at INTEGER NOT NULL,
			payload     BLOB NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the snapshot with the given reminder set.
func (s *Store) Save(reminders []reminder.Reminder, capturedAt time.Time) error {
	payload, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshot (id, captured_at, payload) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET captured_at = excluded.captured_at, payload = excluded.payload
	`, capturedAt.Unix(), payload)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// Load returns the cached reminder set and its capture time. An empty set
// and zero time mean nothing has been cached yet.
func (s *Store) Load() ([]reminder.Reminder, time.Time, error) {
	row := s.db.QueryRow(`SELECT captured_at, payload FROM snapshot WHERE id = 1`)

	var capturedAt int64
	var payload []byte
	if err := row.Scan(&capturedAt, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("read snapshot: %w", err)
	}

	var reminders []reminder.Reminder
	if err := json.Unmarshal(payload, &reminders); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode snapshot: %w", err)
	}

	return reminders, time.Unix(capturedAt, 0), nil
}
