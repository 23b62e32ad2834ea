// internal/leaderboard/memory.go
//
// In-memory implementation of the leaderboard Store interface.
// Used by tests, and as the silent fallback when the SQLite file cannot
// be opened: gameplay must keep working even without durable storage.
//
// Characteristics:
//   - Entries live in a sorted slice guarded by an RWMutex.
//   - State is lost when the process exits.

package leaderboard

import (
	"sync"
	"time"

	"github.com/robalobadob/novatap/internal/game"
)

// Store is the persistence interface for leaderboard entries.
// Implementations keep the collection invariants from entry.go.
type Store interface {
	// UpsertBest records score for name/mode, keeping the higher of the
	// stored and submitted scores.
	UpsertBest(name string, score int, mode game.Mode) error

	// Top returns up to TopLimit entries for one mode, best first.
	Top(mode game.Mode) ([]Entry, error)

	// TopAll returns up to TopLimit entries across all modes, best first.
	TopAll() ([]Entry, error)

	// Close releases any underlying resources.
	Close() error
}

// memory is a slice-backed Store implementation.
type memory struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

func (m *memory) UpsertBest(name string, score int, mode game.Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = upsert(m.entries, name, score, mode, time.Now().UTC())
	return nil
}

func (m *memory) Top(mode game.Mode) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return top(m.entries, mode, false), nil
}

func (m *memory) TopAll() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return top(m.entries, "", true), nil
}

func (m *memory) Close() error { return nil }
