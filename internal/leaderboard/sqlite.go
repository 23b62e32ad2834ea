// internal/leaderboard/sqlite.go
//
// SQLite-backed implementation of the leaderboard Store interface.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout).
//   - Persisting the entry collection as a single JSON blob under a fixed
//     key in a kv table, written back synchronously after every mutation.
//   - Rehydrating the collection at startup; a missing or corrupt blob
//     loads as an empty collection, never as an error surfaced to the
//     player.

package leaderboard

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/novatap/internal/game"
)

// blobKey is the fixed kv key the collection is stored under.
const blobKey = "leaderboard"

// sqliteStore caches the collection in memory and mirrors every mutation
// into the kv table before returning.
type sqliteStore struct {
	mu      sync.RWMutex
	db      *sql.DB
	entries []Entry
}

// NewSQLiteStore opens (and creates if missing) the database at path and
// loads the stored collection.
func NewSQLiteStore(path string) (Store, error) {
	// Ensure directory exists for ./data/novatap.db, etc.
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	s := &sqliteStore{db: db}
	s.entries = s.load()
	return s, nil
}

// load reads the blob and decodes it. Any failure degrades to an empty
// collection so the UI stays functional.
func (s *sqliteStore) load() []Entry {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key=?`, blobKey).Scan(&blob)
	switch {
	case err == sql.ErrNoRows:
		return nil
	case err != nil:
		log.Warn().Err(err).Msg("leaderboard load failed, starting empty")
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(blob, &entries); err != nil {
		log.Warn().Err(err).Msg("leaderboard blob corrupt, starting empty")
		return nil
	}
	return sortAndTrim(entries)
}

// persist writes the full collection back under blobKey.
func (s *sqliteStore) persist() error {
	blob, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO kv(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		blobKey, blob,
	); err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	return nil
}

func (s *sqliteStore) UpsertBest(name string, score int, mode game.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = upsert(s.entries, name, score, mode, time.Now().UTC())
	return s.persist()
}

func (s *sqliteStore) Top(mode game.Mode) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return top(s.entries, mode, false), nil
}

func (s *sqliteStore) TopAll() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return top(s.entries, "", true), nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
