// Package prefs persists the few user flags that survive a restart
package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// KeyAudioPlaying records whether music was on when the user last toggled it
const KeyAudioPlaying = "crystalShard_audioPlaying"

// Flags reads and writes boolean preferences
// ok is false when the key was never written
type Flags interface {
	Flag(key string) (value, ok bool, err error)
	SetFlag(key string, value bool) error
}

// Store keeps flags in a SQLite database
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate prefs: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
	CREATE TABLE IF NOT EXISTS prefs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// Close closes the database
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Flag(key string) (bool, bool, error) {
	var raw string
	err := s.conn.Get(&raw, "SELECT value FROM prefs WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("read %s: %w", key, err)
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("read %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) SetFlag(key string, value bool) error {
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO prefs (key, value) VALUES (?, ?)",
		key, strconv.FormatBool(value),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Memory keeps flags for the life of the process
type Memory struct {
	mu    sync.Mutex
	flags map[string]bool
}

// NewMemory creates an empty in-process store
func NewMemory() *Memory {
	return &Memory{flags: make(map[string]bool)}
}

func (m *Memory) Flag(key string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.flags[key]
	return v, ok, nil
}

func (m *Memory) SetFlag(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = value
	return nil
}
