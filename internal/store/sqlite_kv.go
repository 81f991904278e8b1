package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteKV is the SQLite-backed key/value store.
// Thread-safe for concurrent WASM callbacks.
type SQLiteKV struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema holds the single kv table. Values are JSON text blobs owned by
// the board; the store never inspects them.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// NewSQLiteKV creates a new in-memory SQLite store. In the browser the
// database lives in WASM memory and is synced to OPFS via Export/Import.
func NewSQLiteKV() (*SQLiteKV, error) {
	return NewSQLiteKVWithDSN(":memory:")
}

// NewSQLiteKVWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteKVWithDSN(dsn string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteKV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key, or "" if the key is absent.
func (s *SQLiteKV) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set durably stores value under key, replacing any previous value.
func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UnixMilli())

	return err
}

// Delete removes a key. Used when a user's scoped settings are reset.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Export serializes all keys to JSON bytes.
// This is a portable export that doesn't depend on sqlite3 serialization APIs.
func (s *SQLiteKV) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("export kv: %w", err)
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan kv row: %w", err)
		}
		data[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return json.Marshal(data)
}

// Import restores the store from an exported JSON byte slice.
// Clears all existing keys and re-inserts from the export.
func (s *SQLiteKV) Import(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(data) == 0 {
		return nil
	}

	var imported map[string]string
	if err := json.Unmarshal(data, &imported); err != nil {
		return fmt.Errorf("import unmarshal: %w", err)
	}

	if _, err := s.db.Exec(`DELETE FROM kv`); err != nil {
		return fmt.Errorf("clear kv: %w", err)
	}

	now := time.Now().UnixMilli()
	for k, v := range imported {
		if _, err := s.db.Exec(`
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		`, k, v, now); err != nil {
			return fmt.Errorf("import key %s: %w", k, err)
		}
	}

	return nil
}

// Compile-time interface checks
var (
	_ KV          = (*SQLiteKV)(nil)
	_ Snapshotter = (*SQLiteKV)(nil)
)
