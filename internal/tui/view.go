// internal/tui/view.go
//
// Screen drawing. Pure rendering over the App's state; the only side
// effect besides terminal output is recording tile rectangles for mouse
// hit-testing.

package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/robalobadob/novatap/internal/game"
	"github.com/robalobadob/novatap/internal/leaderboard"
)

const (
	tileW   = 6
	tileH   = 3
	tileGap = 1
)

var (
	styleTitle     = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
	styleHint      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelected  = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorAqua)
	popupGoodStyle = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorGreen)
	popupBadStyle  = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed)
)

func (a *App) draw() {
	a.screen.Clear()
	switch a.current {
	case screenMenu:
		a.drawMenu()
	case screenGame:
		a.drawGame()
	case screenNameEntry:
		a.drawNameEntry()
	case screenBoard:
		a.drawBoard()
	}
	a.screen.Show()
}

// print writes text starting at (x, y).
func (a *App) print(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// printCentered writes text centered horizontally on row y.
func (a *App) printCentered(y int, style tcell.Style, text string) {
	w, _ := a.screen.Size()
	a.print((w-len([]rune(text)))/2, y, style, text)
}

// fillRect paints a solid rectangle.
func (a *App) fillRect(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			a.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// tileStyle converts a tile color to a terminal style with a readable
// foreground for the shape glyph.
func tileStyle(c colorful.Color) tcell.Style {
	r, g, b := c.RGB255()
	bg := tcell.NewRGBColor(int32(r), int32(g), int32(b))
	fg := tcell.ColorBlack
	if l, _, _ := c.Lab(); l < 0.5 {
		fg = tcell.ColorWhite
	}
	return tcell.StyleDefault.Background(bg).Foreground(fg)
}

// ------------------------------- menu ---------------------------------------

func (a *App) drawMenu() {
	a.printCentered(2, styleTitle, "N O V A T A P")
	a.printCentered(3, styleHint, "find the matching tile before time runs out")

	modes := game.Modes()
	for i, m := range modes {
		cfg := m.Config()
		line := fmt.Sprintf("  %s - %dx%d grid, %ds rounds, %ds session",
			m, cfg.Grid, cfg.Grid,
			int(cfg.RoundTime.Seconds()), int(cfg.SessionTime.Seconds()))
		style := tcell.StyleDefault
		if i == a.modeIdx {
			line = ">" + line[1:]
			style = styleSelected
		}
		a.printCentered(6+i, style, line)
	}

	toggle := "off"
	if a.shapeMode {
		toggle = "on"
	}
	a.printCentered(10, tcell.StyleDefault, fmt.Sprintf("shape mode: %s", toggle))
	a.printCentered(13, styleHint, "↑/↓ pick mode · s toggle shapes · enter play")
	a.printCentered(14, styleHint, "l leaderboard · q quit")
}

// ------------------------------- game ---------------------------------------

func (a *App) drawGame() {
	sw, _ := a.screen.Size()
	grid := a.engine.Mode().Config().Grid

	a.print(2, 1, tcell.StyleDefault,
		fmt.Sprintf("Score %d   Streak %d", a.score, a.streak))
	a.print(2, 2, tcell.StyleDefault,
		fmt.Sprintf("Round %02ds   Session %02ds", a.roundLeft, a.sessionLeft))

	// Target swatch with shape glyph when shapes matter.
	a.print(2, 4, tcell.StyleDefault, "Find:")
	ts := tileStyle(a.round.Target.Color)
	glyph := ' '
	if a.engine.ShapeMode() {
		glyph = a.round.Target.Shape.Rune()
	}
	a.print(8, 4, ts, "  ")
	a.screen.SetContent(10, 4, glyph, nil, ts)
	a.print(11, 4, ts, "  ")

	boardW := grid*(tileW+tileGap) - tileGap
	x0 := (sw - boardW) / 2
	if x0 < 0 {
		x0 = 0
	}
	y0 := 6

	a.tiles = a.tiles[:0]
	for i, tile := range a.round.Tiles {
		row, col := i/grid, i%grid
		x := x0 + col*(tileW+tileGap)
		y := y0 + row*(tileH+tileGap)
		st := tileStyle(tile.Color)
		a.fillRect(x, y, tileW, tileH, st)
		if a.engine.ShapeMode() {
			a.screen.SetContent(x+tileW/2, y+tileH/2, tile.Shape.Rune(), nil, st)
		}
		a.tiles = append(a.tiles, tileRect{x: x, y: y, w: tileW, h: tileH, index: i})
	}

	popupY := y0 + grid*(tileH+tileGap) + 1
	if a.popup != "" {
		a.printCentered(popupY, a.popupStyle, a.popup)
	}
	a.printCentered(popupY+2, styleHint, "click a tile (or 1-9) · esc back")
}

// ---------------------------- name entry -------------------------------------

func (a *App) drawNameEntry() {
	a.printCentered(3, styleTitle, "SESSION OVER")
	a.printCentered(5, styleSelected, fmt.Sprintf("%s - %s", a.final.Rank, a.final.Message))
	a.printCentered(7, tcell.StyleDefault,
		fmt.Sprintf("Final score: %d (%s)", a.final.Score, a.final.Mode))
	a.printCentered(10, tcell.StyleDefault, "Enter your name:")
	a.printCentered(11, styleSelected, string(a.name)+"_")
	a.printCentered(14, styleHint, "enter save · esc skip")
}

// ---------------------------- leaderboard ------------------------------------

func (a *App) drawBoard() {
	title := fmt.Sprintf("LEADERBOARD - %s", a.boardMode)
	if a.boardAll {
		title = "LEADERBOARD - all modes"
	}
	a.printCentered(2, styleTitle, title)

	entries, err := a.boardEntries()
	if err != nil || len(entries) == 0 {
		a.printCentered(5, styleHint, "no scores yet - go set one")
	}
	for i, e := range entries {
		line := fmt.Sprintf("%2d. %-24s %5d  %s", i+1, e.Name, e.Score, e.Mode)
		a.printCentered(4+i, tcell.StyleDefault, line)
	}

	a.printCentered(17, styleHint, "1/2/3 filter mode · a all · esc back")
}

func (a *App) boardEntries() ([]leaderboard.Entry, error) {
	if a.boardAll {
		return a.store.TopAll()
	}
	return a.store.Top(a.boardMode)
}
