/*
Package sqlite provides a SQLite-backed implementation of the durable
key-value store.

PURPOSE:
  Persists the handful of durable values the engine keeps across process
  restarts: session token, session user profile (JSON), and the theme
  preference. One table, no schema versioning — a malformed stored value
  is the caller's problem to degrade gracefully, not ours to reject.

WAL MODE:
  The database is opened with WAL (Write-Ahead Logging): readers don't
  block the single writer, and crash recovery is cleaner.

USAGE:
  kv, err := sqlite.New("./reservation.db")
  if err != nil {
      log.Fatal(err)
  }
  defer kv.Close()

  eng := engine.New(api, kv)

SEE ALSO:
  - engine/kv.go: interface definition
  - engine/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// KV implements engine.KV on a single SQLite table.
type KV struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*KV, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	kv := &KV{db: db}
	if err := kv.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return kv, nil
}

// Close closes the database connection.
func (k *KV) Close() error {
	return k.db.Close()
}

func (k *KV) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := k.db.Exec(schema)
	return err
}

// Get returns the stored value for key and whether it was present. Query
// failures read as absent: durable state always degrades to defaults.
func (k *KV) Get(key string) (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var value string
	err := k.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any previous value.
func (k *KV) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	_, err := k.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (k *KV) Delete(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	_, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}
