// internal/game/events.go
//
// Engine → presentation notifications.
// The engine holds no rendering concerns; everything the UI needs arrives
// through the Listener interface. Events that relate to a specific round
// carry the engine's generation counter so deferred work scheduled for an
// older round can recognize itself as stale and bail out.

package game

// Bonus is one labeled component of a scoring gain, e.g. {"Speed Bonus", 3}.
type Bonus struct {
	Label  string
	Points int
}

// RoundEvent announces a freshly generated round.
type RoundEvent struct {
	Gen    uint64
	Target Target
	Tiles  []Tile
}

// TickEvent reports remaining time, in whole seconds rounded up and
// floored at zero.
type TickEvent struct {
	Gen         uint64
	RoundLeft   int
	SessionLeft int
}

// TapEvent reports the outcome of a tile tap. Gained includes the base
// point; Bonuses lists only the extras.
type TapEvent struct {
	Gen     uint64
	Correct bool
	Gained  int
	Bonuses []Bonus
	Score   int
	Streak  int
}

// TimeoutEvent announces that a round timer expired with no correct tap.
type TimeoutEvent struct {
	Gen uint64
}

// EndEvent announces the end of a session.
type EndEvent struct {
	Score     int
	Mode      Mode
	ShapeMode bool
	Rank      string
	Message   string
}

// Listener receives engine notifications. Callbacks run synchronously on
// whatever goroutine drives the engine; implementations must not block.
type Listener interface {
	RoundStarted(RoundEvent)
	Ticked(TickEvent)
	Tapped(TapEvent)
	TimedOut(TimeoutEvent)
	SessionEnded(EndEvent)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) RoundStarted(RoundEvent) {}
func (NopListener) Ticked(TickEvent)        {}
func (NopListener) Tapped(TapEvent)         {}
func (NopListener) TimedOut(TimeoutEvent)   {}
func (NopListener) SessionEnded(EndEvent)   {}
