package game

import (
	"testing"
	"time"
)

// recorder captures every engine notification for assertions.
type recorder struct {
	rounds   []RoundEvent
	ticks    []TickEvent
	taps     []TapEvent
	timeouts []TimeoutEvent
	ends     []EndEvent
}

func (r *recorder) RoundStarted(ev RoundEvent) { r.rounds = append(r.rounds, ev) }
func (r *recorder) Ticked(ev TickEvent)        { r.ticks = append(r.ticks, ev) }
func (r *recorder) Tapped(ev TapEvent)         { r.taps = append(r.taps, ev) }
func (r *recorder) TimedOut(ev TimeoutEvent)   { r.timeouts = append(r.timeouts, ev) }
func (r *recorder) SessionEnded(ev EndEvent)   { r.ends = append(r.ends, ev) }

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, seed uint64) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	return New(rec, WithRand(testRand(seed))), rec
}

// tapCorrect taps the current correct tile at the given instant.
func tapCorrect(t *testing.T, e *Engine, now time.Time) {
	t.Helper()
	r := e.Round()
	if r == nil {
		t.Fatal("no active round")
	}
	e.TapTile(r.CorrectIndex, now)
}

// tapWrong taps any non-matching tile at the given instant.
func tapWrong(t *testing.T, e *Engine, now time.Time) {
	t.Helper()
	r := e.Round()
	if r == nil {
		t.Fatal("no active round")
	}
	for i := range r.Tiles {
		if !r.Matches(i) {
			e.TapTile(i, now)
			return
		}
	}
	t.Fatal("no wrong tile on the board")
}

func TestStartSessionResets(t *testing.T) {
	e, rec := newTestEngine(t, 1)
	e.StartSession(ModeEasy, false, base)

	if e.State() != StateActive {
		t.Fatalf("state %s, want active", e.State())
	}
	if e.Score() != 0 || e.Streak() != 0 {
		t.Errorf("score=%d streak=%d, want zeros", e.Score(), e.Streak())
	}
	if len(rec.rounds) != 1 {
		t.Fatalf("%d round events, want 1", len(rec.rounds))
	}
	if e.RoundLeft(base) != 15 || e.SessionLeft(base) != 45 {
		t.Errorf("roundLeft=%d sessionLeft=%d, want 15/45", e.RoundLeft(base), e.SessionLeft(base))
	}
}

// Tapping the correct tile at elapsed=1s with a streak of 2 yields
// 1 base + 3 speed + 2 streak-at-3 = 6 points.
func TestSpeedAndStreakBonusStack(t *testing.T) {
	e, rec := newTestEngine(t, 2)
	e.StartSession(ModeEasy, false, base)

	// Two slow correct taps to reach streak 2 without bonuses.
	now := base.Add(10 * time.Second)
	tapCorrect(t, e, now)
	now = now.Add(10 * time.Second)
	tapCorrect(t, e, now)
	if e.Score() != 2 || e.Streak() != 2 {
		t.Fatalf("after setup: score=%d streak=%d, want 2/2", e.Score(), e.Streak())
	}

	// Fast third tap, 1s into the fresh round.
	tapCorrect(t, e, now.Add(1*time.Second))
	if e.Score() != 8 {
		t.Errorf("score %d, want 8", e.Score())
	}
	if e.Streak() != 3 {
		t.Errorf("streak %d, want 3", e.Streak())
	}

	last := rec.taps[len(rec.taps)-1]
	if last.Gained != 6 {
		t.Errorf("gained %d, want 6", last.Gained)
	}
	wantBonuses := map[string]int{"Speed Bonus": 3, "Streak": 2}
	if len(last.Bonuses) != len(wantBonuses) {
		t.Fatalf("bonuses %+v, want %v", last.Bonuses, wantBonuses)
	}
	for _, b := range last.Bonuses {
		if wantBonuses[b.Label] != b.Points {
			t.Errorf("bonus %+v unexpected", b)
		}
	}
}

func TestQuickBonusWindow(t *testing.T) {
	e, rec := newTestEngine(t, 3)
	e.StartSession(ModeEasy, false, base)

	tapCorrect(t, e, base.Add(4*time.Second))
	got := rec.taps[0]
	if got.Gained != 3 {
		t.Errorf("gained %d, want 3 (base + quick)", got.Gained)
	}
	if len(got.Bonuses) != 1 || got.Bonuses[0].Label != "Quick Bonus" {
		t.Errorf("bonuses %+v, want one Quick Bonus", got.Bonuses)
	}
}

// Streak bonuses fire exactly at 3 and 5; a longer streak earns only the
// base point per tap.
func TestStreakBonusesAreOneShot(t *testing.T) {
	e, rec := newTestEngine(t, 4)
	e.StartSession(ModeEasy, false, base)

	now := base
	gains := []int{}
	for i := 0; i < 7; i++ {
		now = now.Add(10 * time.Second) // outside both speed windows
		tapCorrect(t, e, now)
		gains = append(gains, rec.taps[len(rec.taps)-1].Gained)
	}
	want := []int{1, 1, 3, 1, 6, 1, 1}
	for i := range want {
		if gains[i] != want[i] {
			t.Errorf("tap %d gained %d, want %d", i+1, gains[i], want[i])
		}
	}
}

func TestWrongTapResetsStreakKeepsRound(t *testing.T) {
	e, rec := newTestEngine(t, 5)
	e.StartSession(ModeModerate, true, base)

	tapCorrect(t, e, base.Add(10*time.Second))
	before := e.Round()
	score := e.Score()

	tapWrong(t, e, base.Add(12*time.Second))
	if e.Streak() != 0 {
		t.Errorf("streak %d, want 0", e.Streak())
	}
	if e.Score() != score {
		t.Errorf("score changed on wrong tap: %d → %d", score, e.Score())
	}
	if e.Round() != before {
		t.Error("round regenerated on wrong tap")
	}
	last := rec.taps[len(rec.taps)-1]
	if last.Correct {
		t.Error("wrong tap reported as correct")
	}
}

func TestOutOfRangeTapIsNoop(t *testing.T) {
	e, rec := newTestEngine(t, 6)
	e.StartSession(ModeEasy, false, base)
	taps := len(rec.taps)

	e.TapTile(-1, base)
	e.TapTile(ModeEasy.Cells(), base)
	if len(rec.taps) != taps {
		t.Errorf("stray indexes produced tap events")
	}
}

// A round timeout resets the streak and deals a new board without
// touching the score or ending the session.
func TestRoundTimeout(t *testing.T) {
	e, rec := newTestEngine(t, 7)
	e.StartSession(ModeEasy, false, base)

	tapCorrect(t, e, base.Add(10*time.Second)) // streak 1, fresh round at +10s
	score := e.Score()

	e.Tick(base.Add(26 * time.Second)) // round deadline +25s passed, session (45s) not
	if len(rec.timeouts) != 1 {
		t.Fatalf("%d timeout events, want 1", len(rec.timeouts))
	}
	if e.Streak() != 0 {
		t.Errorf("streak %d after timeout, want 0", e.Streak())
	}
	if e.Score() != score {
		t.Errorf("score changed on timeout: %d → %d", score, e.Score())
	}
	if e.State() != StateActive {
		t.Errorf("state %s, want active", e.State())
	}
	if len(rec.rounds) != 3 {
		t.Errorf("%d round events, want 3 (start, tap, timeout)", len(rec.rounds))
	}
}

// When round and session expire in the same tick, session end wins.
func TestSessionEndTakesPriority(t *testing.T) {
	e, rec := newTestEngine(t, 8)
	e.StartSession(ModeEasy, false, base)

	e.Tick(base.Add(46 * time.Second)) // both the 15s round and 45s session are gone
	if len(rec.timeouts) != 0 {
		t.Errorf("timeout emitted alongside session end")
	}
	if len(rec.ends) != 1 {
		t.Fatalf("%d end events, want 1", len(rec.ends))
	}
	if e.State() != StateEnded {
		t.Errorf("state %s, want ended", e.State())
	}
}

func TestEndedEngineIgnoresInput(t *testing.T) {
	e, rec := newTestEngine(t, 9)
	e.StartSession(ModeEasy, false, base)
	e.Tick(base.Add(46 * time.Second))

	taps, ticks := len(rec.taps), len(rec.ticks)
	e.TapTile(0, base.Add(47*time.Second))
	e.Tick(base.Add(47 * time.Second))
	if len(rec.taps) != taps || len(rec.ticks) != ticks {
		t.Error("ended engine still emitting events")
	}

	// A fresh session revives it.
	e.StartSession(ModeHard, true, base.Add(time.Minute))
	if e.State() != StateActive {
		t.Errorf("state %s after restart, want active", e.State())
	}
}

func TestEndEventCarriesRank(t *testing.T) {
	e, rec := newTestEngine(t, 10)
	e.StartSession(ModeEasy, false, base)

	// Rack up a score with fast taps, then let the session lapse.
	now := base
	for i := 0; i < 12; i++ {
		tapCorrect(t, e, now) // elapsed 0 → +4 each, plus streak bonuses
	}
	e.Tick(base.Add(46 * time.Second))

	if len(rec.ends) != 1 {
		t.Fatalf("%d end events, want 1", len(rec.ends))
	}
	end := rec.ends[0]
	// 12 taps * 4 + streak bonuses (2 at streak 3, 5 at streak 5) = 55.
	if end.Score != 55 {
		t.Errorf("final score %d, want 55", end.Score)
	}
	if end.Rank != "Nova Pro" {
		t.Errorf("rank %q, want Nova Pro", end.Rank)
	}
	if end.Mode != ModeEasy {
		t.Errorf("mode %s, want easy", end.Mode)
	}
}

func TestGenerationAdvancesPerRound(t *testing.T) {
	e, _ := newTestEngine(t, 11)
	e.StartSession(ModeEasy, false, base)
	g1 := e.Generation()
	tapCorrect(t, e, base.Add(10*time.Second))
	if e.Generation() != g1+1 {
		t.Errorf("generation %d after new round, want %d", e.Generation(), g1+1)
	}
}

func TestSecondsLeftCeilsAndClamps(t *testing.T) {
	deadline := base.Add(10 * time.Second)
	if got := secondsLeft(deadline, base.Add(9500*time.Millisecond)); got != 1 {
		t.Errorf("0.5s left → %d, want 1", got)
	}
	if got := secondsLeft(deadline, deadline); got != 0 {
		t.Errorf("at deadline → %d, want 0", got)
	}
	if got := secondsLeft(deadline, deadline.Add(time.Hour)); got != 0 {
		t.Errorf("past deadline → %d, want 0", got)
	}
}
