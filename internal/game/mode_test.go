package game

import (
	"testing"
	"time"
)

func TestModeTable(t *testing.T) {
	cases := []struct {
		mode    Mode
		grid    int
		round   time.Duration
		session time.Duration
	}{
		{ModeEasy, 3, 15 * time.Second, 45 * time.Second},
		{ModeModerate, 5, 25 * time.Second, 60 * time.Second},
		{ModeHard, 7, 35 * time.Second, 75 * time.Second},
	}
	for _, c := range cases {
		cfg := c.mode.Config()
		if cfg.Grid != c.grid || cfg.RoundTime != c.round || cfg.SessionTime != c.session {
			t.Errorf("%s: got %+v", c.mode, cfg)
		}
		if got, want := c.mode.Cells(), c.grid*c.grid; got != want {
			t.Errorf("%s: %d cells, want %d", c.mode, got, want)
		}
		if !c.mode.Valid() {
			t.Errorf("%s: not valid", c.mode)
		}
	}
}

func TestUnknownModeFallsBackToEasy(t *testing.T) {
	m := Mode("nightmare")
	if m.Valid() {
		t.Fatal("unknown mode reported valid")
	}
	if m.Config() != ModeEasy.Config() {
		t.Errorf("unknown mode config %+v, want easy", m.Config())
	}
}

func TestRankFor(t *testing.T) {
	cases := []struct {
		score int
		rank  string
	}{
		{0, "Rookie"},
		{9, "Rookie"},
		{10, "Explorer"},
		{24, "Explorer"},
		{25, "Star Runner"},
		{44, "Star Runner"},
		{45, "Nova Pro"},
		{69, "Nova Pro"},
		{70, "Galaxy Legend"},
		{250, "Galaxy Legend"},
	}
	for _, c := range cases {
		if name, _ := RankFor(c.score); name != c.rank {
			t.Errorf("score %d: rank %q, want %q", c.score, name, c.rank)
		}
	}
}
