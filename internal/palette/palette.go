// internal/palette/palette.go
//
// Perceptually distinct color generation for round boards.
// Responsibilities:
//   - Produce N colors evenly spaced around the hue wheel.
//   - Randomize saturation/value inside fixed bands so neighboring hues do
//     not collapse into near-duplicates the way pure random sampling can.
//
// Callers shuffle the returned slice and consume it front-to-back as a
// queue; the first popped color becomes the round target.

package palette

import (
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	satMin = 0.70
	satMax = 0.95
	valMin = 0.75
	valMax = 0.95

	// minSize keeps the hue spacing generous even on tiny boards.
	minSize = 90
	margin  = 12
)

// Size returns how many colors to generate for a board with the given
// number of cells: cells+margin, but never fewer than minSize.
func Size(cells int) int {
	if n := cells + margin; n > minSize {
		return n
	}
	return minSize
}

// Generate returns count colors with hue i/count and randomized
// saturation/value. Order is deterministic in hue; shuffling is the
// caller's job.
func Generate(count int, rng *rand.Rand) []colorful.Color {
	if count <= 0 {
		return nil
	}
	out := make([]colorful.Color, count)
	for i := range out {
		hue := 360 * float64(i) / float64(count)
		sat := satMin + rng.Float64()*(satMax-satMin)
		val := valMin + rng.Float64()*(valMax-valMin)
		out[i] = colorful.Hsv(hue, sat, val)
	}
	return out
}
