package engine

// Sufficient reports whether a player holds at least the quantities in the
// bundle. A resource absent from the player's inventory counts as zero.
func (g *GameState) Sufficient(player int, need ResourceBundle) bool {
	held := g.Resources[player]
	for r, qty := range need {
		if held[r] < qty {
			return false
		}
	}
	return true
}

// Exchange moves offered from one player to the other and requested back.
// Callers must have verified both sufficiency checks; the swap is applied as
// one uninterrupted step so no half-transferred state is observable.
func (g *GameState) Exchange(from, to int, offered, requested ResourceBundle) {
	for r, qty := range offered {
		g.Resources[from][r] -= qty
		g.Resources[to][r] += qty
	}
	for r, qty := range requested {
		g.Resources[to][r] -= qty
		g.Resources[from][r] += qty
	}
}

// InventoryValue computes a player's private score: the sum over all
// resource kinds of count held times that player's own per-unit valuation.
func (g *GameState) InventoryValue(player int) int {
	held := g.Resources[player]
	values := g.Valuations[player]
	total := 0
	for _, r := range g.ResourceNames {
		total += held[r] * values[r]
	}
	return total
}
