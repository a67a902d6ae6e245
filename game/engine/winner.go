package engine

import (
	"fmt"
	"sort"
)

// FinalValues computes every player's private inventory value. Read-only;
// the ledger is not touched.
func (n *Negotiation) FinalValues() map[int]int {
	values := make(map[int]int, n.state.NumPlayers)
	for pid := 0; pid < n.state.NumPlayers; pid++ {
		values[pid] = n.state.InventoryValue(pid)
	}
	return values
}

// determineWinner resolves the game at the turn limit: the strictly maximum
// inventory value wins; ties end in a draw naming the tied players.
func (n *Negotiation) determineWinner() {
	values := n.FinalValues()

	best := 0
	for _, v := range values {
		if v > best {
			best = v
		}
	}

	var winners []int
	for pid, v := range values {
		if v == best {
			winners = append(winners, pid)
		}
	}
	sort.Ints(winners)

	if len(winners) == 1 {
		n.ctrl.DeclareWinners(winners,
			fmt.Sprintf("Player %d wins with a total inventory value of %d!", winners[0], best))
		return
	}
	n.ctrl.DeclareDraw(fmt.Sprintf("Tie among players %v with value %d.", winners, best))
}
