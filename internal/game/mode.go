// internal/game/mode.go
//
// Difficulty modes and their fixed attributes.
// The mode set is closed: easy/moderate/hard with compile-time grid and
// timer values. Modes are never constructed dynamically; everything else
// in the engine reads them through the lookup table here.

package game

import "time"

// Mode identifies a difficulty level.
// Possible values:
//   - "easy":     3x3 grid, 15s rounds, 45s session.
//   - "moderate": 5x5 grid, 25s rounds, 60s session.
//   - "hard":     7x7 grid, 35s rounds, 75s session.
type Mode string

const (
	ModeEasy     Mode = "easy"
	ModeModerate Mode = "moderate"
	ModeHard     Mode = "hard"
)

// ModeConfig holds the fixed attributes of a difficulty mode.
type ModeConfig struct {
	Grid        int           // Tiles per side; the board has Grid*Grid cells.
	RoundTime   time.Duration // Time allowed per round.
	SessionTime time.Duration // Total session length.
}

var modeTable = map[Mode]ModeConfig{
	ModeEasy:     {Grid: 3, RoundTime: 15 * time.Second, SessionTime: 45 * time.Second},
	ModeModerate: {Grid: 5, RoundTime: 25 * time.Second, SessionTime: 60 * time.Second},
	ModeHard:     {Grid: 7, RoundTime: 35 * time.Second, SessionTime: 75 * time.Second},
}

// Modes lists all difficulty modes in ascending order of difficulty.
func Modes() []Mode { return []Mode{ModeEasy, ModeModerate, ModeHard} }

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	_, ok := modeTable[m]
	return ok
}

// Config returns the fixed attributes for m.
// Unknown modes fall back to easy so a stale persisted value can never
// break the engine.
func (m Mode) Config() ModeConfig {
	if cfg, ok := modeTable[m]; ok {
		return cfg
	}
	return modeTable[ModeEasy]
}

// Cells returns the number of tiles on the board for m.
func (m Mode) Cells() int {
	g := m.Config().Grid
	return g * g
}
