// internal/game/rank.go
//
// End-of-session rank tiers. Fixed score breakpoints; highest band wins.

package game

type rankTier struct {
	min     int
	name    string
	message string
}

// Ordered highest band first; the final entry catches everything.
var rankTiers = []rankTier{
	{70, "Galaxy Legend", "Absolutely unstoppable!"},
	{45, "Nova Pro", "Blazing reflexes!"},
	{25, "Star Runner", "You're flying now!"},
	{10, "Explorer", "Nice run, keep climbing!"},
	{0, "Rookie", "Warm-up complete. Go again!"},
}

// RankFor maps a final score to its rank tier name and flavor message.
func RankFor(score int) (name, message string) {
	for _, t := range rankTiers {
		if score >= t.min {
			return t.name, t.message
		}
	}
	last := rankTiers[len(rankTiers)-1]
	return last.name, last.message
}
