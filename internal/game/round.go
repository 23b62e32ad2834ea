// internal/game/round.go
//
// Round board generation.
// Responsibilities:
//   - Build a board of Grid*Grid tiles with exactly one tile matching the
//     target under the active predicate.
//   - Colors come from a shuffled palette consumed front-to-back, so every
//     tile color is drawn without replacement.
//   - In shape mode, a distractor that would duplicate the target's
//     (color, shape) pair has its shape re-picked from the remaining three.

package game

import (
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/robalobadob/novatap/internal/palette"
)

// Round holds the state of a single round: the target, the generated
// board, and where the matching tile was placed.
type Round struct {
	Target       Target
	Tiles        []Tile
	CorrectIndex int

	shapeMode bool
}

// NewRound generates a fresh round for the given mode.
// The returned board always contains exactly one tile satisfying Matches.
func NewRound(mode Mode, shapeMode bool, rng *rand.Rand) *Round {
	cells := mode.Cells()

	colors := palette.Generate(palette.Size(cells), rng)
	rng.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})

	next := 0
	pop := func() colorful.Color {
		c := colors[next]
		next++
		return c
	}

	target := Target{Color: pop(), Shape: randomShape(rng)}

	r := &Round{
		Target:       target,
		Tiles:        make([]Tile, cells),
		CorrectIndex: rng.IntN(cells),
		shapeMode:    shapeMode,
	}

	for i := range r.Tiles {
		if i == r.CorrectIndex {
			r.Tiles[i] = Tile{Color: target.Color, Shape: target.Shape}
			continue
		}
		t := Tile{Color: pop(), Shape: DefaultShape}
		if shapeMode {
			t.Shape = randomShape(rng)
			// A palette collision with the target color plus the same random
			// shape would create a second valid match; re-pick the shape.
			if t.Color == target.Color && t.Shape == target.Shape {
				t.Shape = randomShapeExcluding(rng, target.Shape)
			}
		}
		r.Tiles[i] = t
	}
	return r
}

// Matches reports whether the tile at index satisfies the active match
// predicate: color equality, plus shape equality in shape mode.
// Out-of-range indexes never match.
func (r *Round) Matches(index int) bool {
	if index < 0 || index >= len(r.Tiles) {
		return false
	}
	t := r.Tiles[index]
	if t.Color != r.Target.Color {
		return false
	}
	return !r.shapeMode || t.Shape == r.Target.Shape
}

// ShapeMode reports whether this round was generated for shape mode.
func (r *Round) ShapeMode() bool { return r.shapeMode }
