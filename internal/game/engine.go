// internal/game/engine.go
//
// Timer-driven round/session state machine for NovaTap.
// Responsibilities:
//   - Own score, streak, round and session deadlines.
//   - Consume tile-tap events and apply the scoring rules
//     (speed bonuses, one-shot streak bonuses).
//   - Transition rounds on timeout and end the session when its timer
//     expires, emitting a rank result.
//
// Notes:
//   - The engine is single-threaded by construction: ticks and taps are
//     expected to arrive serialized on one goroutine (the UI event loop).
//   - Every operation takes an explicit `now`, so tests drive the clock
//     without sleeping.
//   - There are no recoverable error paths here: malformed input (stray
//     tap index, negative elapsed time) is ignored or clamped, never
//     returned as an error.

package game

import (
	"math/rand/v2"
	"time"

	"github.com/samber/lo"
)

// State is the coarse lifecycle state of the engine.
type State uint8

const (
	StateIdle State = iota
	StateActive
	StateEnded
)

// String returns a short state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Engine is the round/session state machine. Not safe for concurrent
// use; serialize all calls on a single goroutine.
type Engine struct {
	listener Listener
	rng      *rand.Rand

	state     State
	mode      Mode
	shapeMode bool

	score  int
	streak int

	round *Round
	gen   uint64 // bumped on every round start

	roundDeadline   time.Time
	sessionDeadline time.Time
}

// Option customizes engine construction.
type Option func(*Engine)

// WithRand injects a deterministic random source (tests).
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// New constructs an idle engine reporting to listener.
// A nil listener is replaced with NopListener.
func New(listener Listener, opts ...Option) *Engine {
	if listener == nil {
		listener = NopListener{}
	}
	e := &Engine{
		listener: listener,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartSession resets score and streak, arms the session timer, and
// starts the first round. Unknown modes fall back to easy.
func (e *Engine) StartSession(mode Mode, shapeMode bool, now time.Time) {
	if !mode.Valid() {
		mode = ModeEasy
	}
	e.mode = mode
	e.shapeMode = shapeMode
	e.score = 0
	e.streak = 0
	e.state = StateActive
	e.sessionDeadline = now.Add(mode.Config().SessionTime)
	e.startRound(now)
}

// startRound generates a new board and resets the round timer.
// Score and streak carry over; the session timer is untouched.
func (e *Engine) startRound(now time.Time) {
	e.gen++
	e.round = NewRound(e.mode, e.shapeMode, e.rng)
	e.roundDeadline = now.Add(e.mode.Config().RoundTime)
	e.listener.RoundStarted(RoundEvent{Gen: e.gen, Target: e.round.Target, Tiles: e.round.Tiles})
}

// Tick advances the timers. Called at a fixed polling interval; a no-op
// outside an active session. Session expiry takes priority over a round
// timeout occurring in the same tick.
func (e *Engine) Tick(now time.Time) {
	if e.state != StateActive {
		return
	}
	sessionLeft := secondsLeft(e.sessionDeadline, now)
	if sessionLeft == 0 {
		e.endSession()
		return
	}
	roundLeft := secondsLeft(e.roundDeadline, now)
	if roundLeft == 0 {
		e.streak = 0
		e.listener.TimedOut(TimeoutEvent{Gen: e.gen})
		e.startRound(now)
		roundLeft = secondsLeft(e.roundDeadline, now)
	}
	e.listener.Ticked(TickEvent{Gen: e.gen, RoundLeft: roundLeft, SessionLeft: sessionLeft})
}

// TapTile applies a tap on the tile at index.
// Correct tap: base point plus speed and streak bonuses, then a new
// round. Wrong tap: streak resets, the board stays. Out-of-range index
// or inactive state: no-op.
func (e *Engine) TapTile(index int, now time.Time) {
	if e.state != StateActive || e.round == nil {
		return
	}
	if index < 0 || index >= len(e.round.Tiles) {
		return
	}
	if !e.round.Matches(index) {
		e.streak = 0
		e.listener.Tapped(TapEvent{Gen: e.gen, Correct: false, Score: e.score, Streak: 0})
		return
	}

	roundSecs := int(e.mode.Config().RoundTime / time.Second)
	elapsed := roundSecs - secondsLeft(e.roundDeadline, now)
	if elapsed < 0 {
		elapsed = 0
	}

	var bonuses []Bonus
	switch {
	case elapsed <= 2:
		bonuses = append(bonuses, Bonus{Label: "Speed Bonus", Points: 3})
	case elapsed <= 5:
		bonuses = append(bonuses, Bonus{Label: "Quick Bonus", Points: 2})
	}

	e.streak++
	// One-shot bonuses at exactly 3 and 5; longer streaks earn nothing
	// extra beyond the base point per tap.
	switch e.streak {
	case 3:
		bonuses = append(bonuses, Bonus{Label: "Streak", Points: 2})
	case 5:
		bonuses = append(bonuses, Bonus{Label: "Hot Streak", Points: 5})
	}

	gained := 1 + lo.SumBy(bonuses, func(b Bonus) int { return b.Points })
	e.score += gained
	e.listener.Tapped(TapEvent{
		Gen:     e.gen,
		Correct: true,
		Gained:  gained,
		Bonuses: bonuses,
		Score:   e.score,
		Streak:  e.streak,
	})
	e.startRound(now)
}

// endSession moves to StateEnded and emits the rank result. The engine
// accepts no further taps or ticks until a new StartSession.
func (e *Engine) endSession() {
	e.state = StateEnded
	e.round = nil
	rank, msg := RankFor(e.score)
	e.listener.SessionEnded(EndEvent{
		Score:     e.score,
		Mode:      e.mode,
		ShapeMode: e.shapeMode,
		Rank:      rank,
		Message:   msg,
	})
}

// Abandon drops an active session without emitting a result (player left
// the game screen).
func (e *Engine) Abandon() {
	if e.state == StateActive {
		e.state = StateIdle
		e.round = nil
	}
}

// State returns the coarse lifecycle state.
func (e *Engine) State() State { return e.state }

// Score returns the current session score.
func (e *Engine) Score() int { return e.score }

// Streak returns the current streak.
func (e *Engine) Streak() int { return e.streak }

// Mode returns the mode of the current or last session.
func (e *Engine) Mode() Mode { return e.mode }

// ShapeMode reports whether the current session matches on shape too.
func (e *Engine) ShapeMode() bool { return e.shapeMode }

// Round returns the active round, or nil outside a session.
func (e *Engine) Round() *Round { return e.round }

// Generation returns the current round generation counter. Deferred
// callbacks capture it and drop themselves once it moves on.
func (e *Engine) Generation() uint64 { return e.gen }

// RoundLeft returns the remaining round time in whole seconds.
func (e *Engine) RoundLeft(now time.Time) int { return secondsLeft(e.roundDeadline, now) }

// SessionLeft returns the remaining session time in whole seconds.
func (e *Engine) SessionLeft(now time.Time) int { return secondsLeft(e.sessionDeadline, now) }

// secondsLeft returns ceil(deadline-now) in seconds, floored at zero.
func secondsLeft(deadline, now time.Time) int {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
