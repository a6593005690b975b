package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLite is the durable Adapter: one kv table in a SQLite file.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// Connections are capped at one writer, matching the single-writer model
// of the store layer.
type SQLite struct {
	db    *sql.DB
	quota int
	used  int
}

// OpenSQLite creates or opens a SQLite-backed adapter at the given path
// with the default quota. Idempotent - safe to call on an existing file.
func OpenSQLite(path string) (*SQLite, error) {
	return OpenSQLiteWithQuota(path, DefaultQuota)
}

// OpenSQLiteWithQuota opens the adapter with an explicit byte budget.
// A non-positive quota disables the budget.
func OpenSQLiteWithQuota(path string, quota int) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect storage: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under the store's serialized access pattern.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply storage schema: %w", err)
	}

	s := &SQLite{db: db, quota: quota}
	if err := s.db.QueryRow(
		"SELECT COALESCE(SUM(LENGTH(key) + LENGTH(value)), 0) FROM kv",
	).Scan(&s.used); err != nil {
		db.Close()
		return nil, fmt.Errorf("measure storage usage: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the value for key.
func (s *SQLite) Get(key string) (string, bool) {
	var v string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&v)
	if err != nil {
		return "", false
	}
	return v, true
}

// Set stores value under key. The insert is a single statement, so the
// previous value survives any failure, including quota rejection.
func (s *SQLite) Set(key, value string) error {
	next := s.used + len(key) + len(value)
	if prev, ok := s.Get(key); ok {
		next -= len(key) + len(prev)
	}
	if s.quota > 0 && next > s.quota {
		return ErrQuotaExceeded
	}
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	s.used = next
	return nil
}

// Remove deletes key.
func (s *SQLite) Remove(key string) {
	if prev, ok := s.Get(key); ok {
		if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err == nil {
			s.used -= len(key) + len(prev)
		}
	}
}

// Keys returns all present keys.
func (s *SQLite) Keys() []string {
	rows, err := s.db.Query("SELECT key FROM kv")
	if err != nil {
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return keys
		}
		keys = append(keys, k)
	}
	return keys
}
