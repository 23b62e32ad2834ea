package game

import (
	"math/rand/v2"
	"testing"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Exactly one tile may satisfy the match predicate, whatever the mode or
// shape setting.
func TestNewRoundExactlyOneMatch(t *testing.T) {
	for _, mode := range Modes() {
		for _, shapeMode := range []bool{false, true} {
			rng := testRand(uint64(len(mode)) + 7)
			for i := 0; i < 200; i++ {
				r := NewRound(mode, shapeMode, rng)
				matches := 0
				for idx := range r.Tiles {
					if r.Matches(idx) {
						matches++
					}
				}
				if matches != 1 {
					t.Fatalf("mode=%s shape=%v iter=%d: %d matching tiles, want 1",
						mode, shapeMode, i, matches)
				}
			}
		}
	}
}

func TestNewRoundBoardShape(t *testing.T) {
	rng := testRand(1)
	for _, mode := range Modes() {
		r := NewRound(mode, true, rng)
		if got, want := len(r.Tiles), mode.Cells(); got != want {
			t.Errorf("mode=%s: %d tiles, want %d", mode, got, want)
		}
		if r.CorrectIndex < 0 || r.CorrectIndex >= len(r.Tiles) {
			t.Errorf("mode=%s: correct index %d out of range", mode, r.CorrectIndex)
		}
		correct := r.Tiles[r.CorrectIndex]
		if correct.Color != r.Target.Color || correct.Shape != r.Target.Shape {
			t.Errorf("mode=%s: tile at correct index %+v does not equal target %+v",
				mode, correct, r.Target)
		}
	}
}

// Without shape mode, every distractor carries the default decorative
// shape and the predicate is color-only.
func TestNewRoundColorModeShapesAreDecorative(t *testing.T) {
	rng := testRand(2)
	r := NewRound(ModeModerate, false, rng)
	for i, tile := range r.Tiles {
		if i == r.CorrectIndex {
			continue
		}
		if tile.Shape != DefaultShape {
			t.Errorf("tile %d has shape %s, want default", i, tile.Shape)
		}
	}
}

func TestMatchesOutOfRange(t *testing.T) {
	r := NewRound(ModeEasy, true, testRand(3))
	if r.Matches(-1) {
		t.Error("index -1 matched")
	}
	if r.Matches(len(r.Tiles)) {
		t.Error("index past the board matched")
	}
}

func TestRandomShapeExcluding(t *testing.T) {
	rng := testRand(4)
	for excluded := ShapeCircle; excluded < shapeCount; excluded++ {
		for i := 0; i < 100; i++ {
			if got := randomShapeExcluding(rng, excluded); got == excluded {
				t.Fatalf("picked excluded shape %s", excluded)
			}
		}
	}
}
