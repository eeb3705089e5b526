package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteStateStore is the SQLite-backed implementation of
// [SessionStateStore]. A single two-column table keeps the store as close to
// the browser localStorage model as possible.
type sqliteStateStore struct {
	mu sync.Mutex
	db *sql.DB
}

const createStateTable = `CREATE TABLE IF NOT EXISTS session_state (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

// NewSessionStateStore opens (creating if necessary) the SQLite file at path
// and ensures the session_state table exists. Pass ":memory:" for an
// ephemeral store in tests.
func NewSessionStateStore(path string) (SessionStateStore, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open session state db: %w", err)
	}

	// the store is accessed from a single client process
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(createStateTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session state table: %w", err)
	}

	return &sqliteStateStore{db: db}, nil
}

func (s *sqliteStateStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrStateKeyNotFound
		}
		return "", fmt.Errorf("get session state %q: %w", key, err)
	}

	return value, nil
}

func (s *sqliteStateStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO session_state (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set session state %q: %w", key, err)
	}

	return nil
}

func (s *sqliteStateStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM session_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete session state %q: %w", key, err)
	}

	return nil
}

func (s *sqliteStateStore) Close() error {
	return s.db.Close()
}
