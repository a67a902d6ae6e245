// Package observation flattens a player's accumulated game messages into a
// single string suitable for a language-model agent. Messages are retained
// across polls so every render shows the full, ordered history the player
// has seen.
package observation

import (
	"fmt"
	"strings"

	"github.com/parleygames/parley/game/engine"
	"github.com/parleygames/parley/game/turn"
)

// Renderer accumulates (sender, text) pairs per player and renders them as
// one prompt string with sender labels.
type Renderer struct {
	history map[int][]turn.Observation
}

// NewRenderer creates an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{history: make(map[int][]turn.Observation)}
}

// Append extends a player's history with newly polled observations.
func (r *Renderer) Append(player int, observations []turn.Observation) {
	r.history[player] = append(r.history[player], observations...)
}

// Render returns the player's full accumulated history as one string, each
// message prefixed with its sender label.
func (r *Renderer) Render(player int) string {
	var b strings.Builder
	for _, obs := range r.history[player] {
		fmt.Fprintf(&b, "\n[%s] %s", senderLabel(obs.From), obs.Text)
	}
	return b.String()
}

// senderLabel names a sender: the GAME sentinel or a player id.
func senderLabel(from int) string {
	if from == engine.FromGame {
		return "GAME"
	}
	return fmt.Sprintf("Player %d", from)
}
