// package store implements the local playlist store: an in-memory list of
// playlists mirrored to durable key-value storage after every mutation.
package store

import (
	"database/sql"
	"fmt"
)

// StorageKey is the key the serialized playlist document is stored under.
const StorageKey = "nbmusic_playlists"

// Storage is durable local key-value storage for serialized documents.
//
// Both operations are best-effort from the store's point of view: callers
// log failures and continue with in-memory state.
type Storage interface {
	Load(key string) ([]byte, error)
	Store(key string, value []byte) error
}

// SQLiteStorage implements [Storage] over the kv table.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates storage backed by an open database connection.
func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

// Load reads the value stored under key. A missing key is an error.
func (s *SQLiteStorage) Load(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", key, err)
	}
	return []byte(value), nil
}

// Store upserts value under key.
func (s *SQLiteStorage) Store(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to store %q: %w", key, err)
	}
	return nil
}
