package observation

import (
	"strings"
	"testing"

	"github.com/parleygames/parley/game/engine"
	"github.com/parleygames/parley/game/turn"
)

func TestRender_EmptyHistory(t *testing.T) {
	r := NewRenderer()
	if got := r.Render(0); got != "" {
		t.Errorf("Render on empty history = %q, want empty", got)
	}
}

func TestRender_LabelsSenders(t *testing.T) {
	r := NewRenderer()
	r.Append(0, []turn.Observation{
		{From: engine.FromGame, Text: "You are Player 0."},
		{From: 2, Text: "(Broadcast) Player 2 says: hi"},
	})

	got := r.Render(0)
	if !strings.Contains(got, "[GAME] You are Player 0.") {
		t.Errorf("game sender not labelled GAME: %q", got)
	}
	if !strings.Contains(got, "[Player 2] (Broadcast) Player 2 says: hi") {
		t.Errorf("player sender not labelled: %q", got)
	}
}

func TestRender_AccumulatesAcrossAppends(t *testing.T) {
	r := NewRenderer()
	r.Append(1, []turn.Observation{{From: engine.FromGame, Text: "first"}})
	r.Append(1, []turn.Observation{{From: 0, Text: "second"}})

	got := r.Render(1)
	firstIdx := strings.Index(got, "first")
	secondIdx := strings.Index(got, "second")
	if firstIdx < 0 || secondIdx < 0 || firstIdx > secondIdx {
		t.Errorf("history not accumulated in order: %q", got)
	}

	// Rendering again must show the same full history, not a drained one.
	if again := r.Render(1); again != got {
		t.Errorf("second render differs: %q vs %q", again, got)
	}
}

func TestRender_PlayersAreIndependent(t *testing.T) {
	r := NewRenderer()
	r.Append(0, []turn.Observation{{From: engine.FromGame, Text: "for player zero"}})

	if got := r.Render(1); got != "" {
		t.Errorf("player 1 sees player 0's history: %q", got)
	}
}
