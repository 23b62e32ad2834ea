// internal/leaderboard/entry.go
//
// Leaderboard entry model and the pure collection rules shared by every
// Store backend.
// Invariants:
//   - At most one entry per (lowercase name, mode) pair.
//   - A resubmission only ever raises a stored score, never lowers it.
//   - The collection stays sorted descending by score (stable for ties)
//     and capped at MaxEntries; lowest scores are evicted first.

package leaderboard

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/robalobadob/novatap/internal/game"
)

const (
	// MaxEntries caps the persisted collection.
	MaxEntries = 100
	// TopLimit caps query results.
	TopLimit = 10
	// DefaultName substitutes an empty player name.
	DefaultName = "Player"
)

// Entry is one persisted best score.
type Entry struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Mode  game.Mode `json:"mode"`
	Date  time.Time `json:"date"`
}

// NormalizeName trims whitespace and substitutes DefaultName for an
// empty result. Never an error: a blank name is a recoverable condition.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}

// upsert applies the best-score rule and returns the updated collection.
// Names collide case-insensitively within the same mode.
func upsert(entries []Entry, name string, score int, mode game.Mode, now time.Time) []Entry {
	if score < 0 {
		score = 0
	}
	name = NormalizeName(name)
	for i := range entries {
		if entries[i].Mode == mode && strings.EqualFold(entries[i].Name, name) {
			if score > entries[i].Score {
				entries[i].Score = score
				entries[i].Date = now
			}
			return sortAndTrim(entries)
		}
	}
	entries = append(entries, Entry{
		ID:    uuid.NewString(),
		Name:  name,
		Score: score,
		Mode:  mode,
		Date:  now,
	})
	return sortAndTrim(entries)
}

// sortAndTrim restores the collection invariant in place.
func sortAndTrim(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// top returns up to TopLimit entries, filtered to one mode unless all is
// set. The input is assumed sorted; the result is a copy.
func top(entries []Entry, mode game.Mode, all bool) []Entry {
	filtered := entries
	if !all {
		filtered = lo.Filter(entries, func(e Entry, _ int) bool {
			return e.Mode == mode
		})
	}
	out := make([]Entry, 0, TopLimit)
	for _, e := range filtered {
		if len(out) == TopLimit {
			break
		}
		out = append(out, e)
	}
	return out
}
