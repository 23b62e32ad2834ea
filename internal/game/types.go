// internal/game/types.go
//
// Core type definitions for the NovaTap engine.
// Defines:
//   - Shape: the four tile glyph shapes plus the default decorative shape.
//   - Tile: a single board cell (color + shape).
//   - Target: what the player is asked to find.

package game

import (
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Shape identifies a tile glyph. In shape mode the match predicate
// compares shapes; in color mode every tile carries DefaultShape and the
// predicate ignores it.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeDiamond
	ShapeTriangle
	ShapeStar

	shapeCount // sentinel for random selection
)

// DefaultShape is the decorative shape used outside shape mode.
const DefaultShape = ShapeCircle

// String returns the lowercase name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeDiamond:
		return "diamond"
	case ShapeTriangle:
		return "triangle"
	case ShapeStar:
		return "star"
	default:
		return "unknown"
	}
}

// Rune returns a single glyph for terminal rendering.
func (s Shape) Rune() rune {
	switch s {
	case ShapeCircle:
		return '●'
	case ShapeDiamond:
		return '◆'
	case ShapeTriangle:
		return '▲'
	case ShapeStar:
		return '★'
	default:
		return '?'
	}
}

// randomShape picks one of the four shapes uniformly.
func randomShape(rng *rand.Rand) Shape {
	return Shape(rng.IntN(int(shapeCount)))
}

// randomShapeExcluding picks a shape uniformly from the three shapes
// other than excluded.
func randomShapeExcluding(rng *rand.Rand, excluded Shape) Shape {
	s := Shape(rng.IntN(int(shapeCount) - 1))
	if s >= excluded {
		s++
	}
	return s
}

// Tile is a single board cell. Tiles are ephemeral: the whole board is
// regenerated every round and no tile identity survives a round change.
type Tile struct {
	Color colorful.Color
	Shape Shape
}

// Target is the tile the player must find.
type Target struct {
	Color colorful.Color
	Shape Shape
}
