// internal/tui/app.go
//
// Terminal presentation layer for NovaTap.
// Responsibilities:
//   - Own the single event loop that serializes timer ticks, keyboard and
//     mouse input, and deferred callbacks onto one goroutine; the engine
//     and the leaderboard store are only ever touched from here.
//   - Screen flow: menu → game → name entry → leaderboard.
//   - Popup toasts are fire-and-forget: dismissal is a deferred callback
//     scoped to a generation token, so callbacks scheduled for a finished
//     session (or a superseded popup) recognize themselves as stale and
//     do nothing.

package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/novatap/internal/game"
	"github.com/robalobadob/novatap/internal/leaderboard"
)

const (
	tickInterval = 200 * time.Millisecond
	popupTTL     = time.Second
	maxNameLen   = 24
)

// screenID selects the active screen.
type screenID uint8

const (
	screenMenu screenID = iota
	screenGame
	screenNameEntry
	screenBoard
)

// deferredCall is a callback queued back onto the event loop. It only
// runs if its generation token still matches the app's.
type deferredCall struct {
	gen uint64
	fn  func()
}

// tileRect is a screen-space rectangle for mouse hit-testing.
type tileRect struct {
	x, y, w, h int
	index      int
}

// App holds all UI state. Implements game.Listener.
type App struct {
	screen tcell.Screen
	store  leaderboard.Store
	engine *game.Engine

	current screenID

	// menu
	modeIdx   int
	shapeMode bool

	// game render model, updated from engine events
	round       game.RoundEvent
	roundLeft   int
	sessionLeft int
	score       int
	streak      int

	// popup toast
	popup      string
	popupStyle tcell.Style
	popupSeq   uint64

	gen   uint64 // session-scoped token for deferred callbacks
	calls chan deferredCall

	// end-of-session flow
	final game.EndEvent
	name  []rune

	// leaderboard screen
	boardMode game.Mode
	boardAll  bool

	tiles     []tileRect
	mouseDown bool
}

// Run starts the terminal UI and blocks until the player quits.
func Run(store leaderboard.Store) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)

	app := &App{
		screen:    screen,
		store:     store,
		calls:     make(chan deferredCall, 16),
		boardMode: game.ModeEasy,
	}
	app.engine = game.New(app)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		app.draw()
		select {
		case ev := <-events:
			if !app.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			app.engine.Tick(time.Now())
		case c := <-app.calls:
			if c.gen == app.gen {
				c.fn()
			}
		}
	}
}

// ----------------------------- scheduling ----------------------------------

// schedule queues fn onto the event loop after d, tagged with the current
// generation token. Stale callbacks are dropped by the loop.
func (a *App) schedule(d time.Duration, fn func()) {
	gen := a.gen
	time.AfterFunc(d, func() {
		select {
		case a.calls <- deferredCall{gen: gen, fn: fn}:
		default:
			// Loop already gone or saturated; the callback was cosmetic.
		}
	})
}

// bump invalidates every pending deferred callback.
func (a *App) bump() { a.gen++ }

// showPopup replaces the toast and schedules its dismissal. A newer popup
// supersedes the pending dismissal of an older one.
func (a *App) showPopup(text string, style tcell.Style) {
	a.popupSeq++
	seq := a.popupSeq
	a.popup = text
	a.popupStyle = style
	a.schedule(popupTTL, func() {
		if a.popupSeq == seq {
			a.popup = ""
		}
	})
}

// --------------------------- engine listener -------------------------------

func (a *App) RoundStarted(ev game.RoundEvent) {
	a.round = ev
	a.roundLeft = int(a.engine.Mode().Config().RoundTime / time.Second)
}

func (a *App) Ticked(ev game.TickEvent) {
	a.roundLeft = ev.RoundLeft
	a.sessionLeft = ev.SessionLeft
}

func (a *App) Tapped(ev game.TapEvent) {
	a.score = ev.Score
	a.streak = ev.Streak
	if !ev.Correct {
		a.showPopup("Wrong tile!", popupBadStyle)
		return
	}
	text := fmt.Sprintf("Correct! +%d", ev.Gained)
	for _, b := range ev.Bonuses {
		text += fmt.Sprintf("  %s +%d", b.Label, b.Points)
	}
	a.showPopup(text, popupGoodStyle)
}

func (a *App) TimedOut(game.TimeoutEvent) {
	a.showPopup("Time's up!", popupBadStyle)
}

func (a *App) SessionEnded(ev game.EndEvent) {
	a.final = ev
	a.bump() // pending popups belong to the finished session
	a.popup = ""
	a.name = a.name[:0]
	a.current = screenNameEntry
}

// ------------------------------ input --------------------------------------

// handleEvent dispatches one terminal event. Returns false to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	switch a.current {
	case screenMenu:
		return a.menuKey(ev)
	case screenGame:
		a.gameKey(ev)
	case screenNameEntry:
		a.nameKey(ev)
	case screenBoard:
		a.boardKey(ev)
	}
	return true
}

func (a *App) menuKey(ev *tcell.EventKey) bool {
	modes := game.Modes()
	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyUp:
		if a.modeIdx > 0 {
			a.modeIdx--
		}
		return true
	case tcell.KeyDown:
		if a.modeIdx < len(modes)-1 {
			a.modeIdx++
		}
		return true
	case tcell.KeyEnter:
		a.startSession(modes[a.modeIdx])
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case 'k':
		if a.modeIdx > 0 {
			a.modeIdx--
		}
	case 'j':
		if a.modeIdx < len(modes)-1 {
			a.modeIdx++
		}
	case '1', '2', '3':
		a.modeIdx = int(ev.Rune() - '1')
	case 's':
		a.shapeMode = !a.shapeMode
	case 'l':
		a.boardMode = modes[a.modeIdx]
		a.boardAll = false
		a.current = screenBoard
	}
	return true
}

func (a *App) gameKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		// Leaving the game screen destroys the session.
		a.engine.Abandon()
		a.bump()
		a.popup = ""
		a.current = screenMenu
		return
	}
	// Keyboard fallback: digits tap the first nine tiles.
	if r := ev.Rune(); r >= '1' && r <= '9' {
		a.engine.TapTile(int(r-'1'), time.Now())
	}
}

func (a *App) nameKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		name := leaderboard.NormalizeName(string(a.name))
		if err := a.store.UpsertBest(name, a.final.Score, a.final.Mode); err != nil {
			// Never interrupt the player over storage trouble.
			log.Warn().Err(err).Msg("saving score failed")
		}
		a.boardMode = a.final.Mode
		a.boardAll = false
		a.current = screenBoard
	case tcell.KeyEscape:
		a.current = screenMenu
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.name) > 0 {
			a.name = a.name[:len(a.name)-1]
		}
	case tcell.KeyRune:
		if r := ev.Rune(); len(a.name) < maxNameLen && r >= ' ' {
			a.name = append(a.name, r)
		}
	}
}

func (a *App) boardKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		a.current = screenMenu
		return
	}
	switch ev.Rune() {
	case 'q':
		a.current = screenMenu
	case '1':
		a.boardMode, a.boardAll = game.ModeEasy, false
	case '2':
		a.boardMode, a.boardAll = game.ModeModerate, false
	case '3':
		a.boardMode, a.boardAll = game.ModeHard, false
	case 'a':
		a.boardAll = true
	}
}

// handleMouse taps the tile under a fresh left-button press.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	defer func() { a.mouseDown = pressed }()
	if a.current != screenGame || !pressed || a.mouseDown {
		return
	}
	x, y := ev.Position()
	if idx, ok := a.tileAt(x, y); ok {
		a.engine.TapTile(idx, time.Now())
	}
}

// tileAt maps screen coordinates to a tile index via the rects recorded
// by the last draw.
func (a *App) tileAt(x, y int) (int, bool) {
	for _, t := range a.tiles {
		if x >= t.x && x < t.x+t.w && y >= t.y && y < t.y+t.h {
			return t.index, true
		}
	}
	return 0, false
}

// startSession resets UI state and starts a fresh engine session.
func (a *App) startSession(mode game.Mode) {
	a.bump()
	a.popup = ""
	a.score = 0
	a.streak = 0
	a.sessionLeft = int(mode.Config().SessionTime / time.Second)
	a.current = screenGame
	a.engine.StartSession(mode, a.shapeMode, time.Now())
}
