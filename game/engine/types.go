package engine

// Resource identifies one tradeable resource kind.
type Resource string

const (
	Wheat Resource = "Wheat"
	Wood  Resource = "Wood"
	Sheep Resource = "Sheep"
	Brick Resource = "Brick"
	Ore   Resource = "Ore"
)

const (
	// Observation sentinels
	ToAll    = -1 // broadcast recipient
	FromGame = -2 // system sender, distinct from any player id

	// Validation constants
	MinPlayers = 2
	MaxPlayers = 15
)

// ResourceBundle maps resource kinds to non-negative counts.
type ResourceBundle map[Resource]int

// Clone returns an independent copy of the bundle.
func (b ResourceBundle) Clone() ResourceBundle {
	out := make(ResourceBundle, len(b))
	for r, q := range b {
		out[r] = q
	}
	return out
}

// ResourceSpec defines one resource kind and its public base value.
type ResourceSpec struct {
	Name      string `json:"name"`
	BaseValue int    `json:"base_value"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	NumPlayers  int            `json:"num_players"`
	MaxTurns    int            `json:"max_turns"`
	Resources   []ResourceSpec `json:"resources"`

	// Starting inventory bounds (inclusive) for every resource kind.
	StartingCountMin int `json:"starting_count_min"`
	StartingCountMax int `json:"starting_count_max"`

	// Private valuations are drawn as base value +/- spread percent,
	// clamped to [ValuationMin, ValuationMax].
	ValuationSpreadPct int `json:"valuation_spread_pct"`
	ValuationMin       int `json:"valuation_min"`
	ValuationMax       int `json:"valuation_max"`
}

// Offer is a proposed, not-yet-executed resource swap between two players.
// Offers live exclusively in the game state's pending-offer table; every
// other component refers to them by id only.
type Offer struct {
	ID        int            `json:"id"`
	From      int            `json:"from"`
	To        int            `json:"to"`
	Offered   ResourceBundle `json:"offered"`
	Requested ResourceBundle `json:"requested"`
}

// GameState represents the complete negotiation game state
type GameState struct {
	NumPlayers    int                    `json:"num_players"`
	ResourceNames []Resource             `json:"resource_names"`
	Resources     map[int]ResourceBundle `json:"resources"`
	Valuations    map[int]ResourceBundle `json:"valuations"`
	PendingOffers map[int]*Offer         `json:"pending_offers"`
	OfferCounter  int                    `json:"offer_counter"`
}

// ValidPlayer reports whether pid addresses a player in this game.
func (g *GameState) ValidPlayer(pid int) bool {
	return pid >= 0 && pid < g.NumPlayers
}
