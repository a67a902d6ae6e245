package service

import (
	"time"

	"github.com/parleygames/parley/game/engine"
	"github.com/parleygames/parley/game/observation"
	"github.com/parleygames/parley/game/turn"
)

// Session represents an active negotiation game
type Session struct {
	ID             string
	Game           *engine.Negotiation
	Turns          *turn.State
	Renderer       *observation.Renderer
	Config         *engine.GameConfig
	Seed           uint64
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	NumPlayers     int               `json:"num_players"`
	MaxTurns       int               `json:"max_turns"`
	Turn           int               `json:"turn"`
	CurrentPlayer  int               `json:"current_player"`
	Outcome        turn.Outcome      `json:"outcome"`
	GameState      *engine.GameState `json:"game_state,omitempty"`
}

// ActResult contains the result of processing one player's action
type ActResult struct {
	Player     int            `json:"player"`
	Events     []engine.Event `json:"events"`
	Done       bool           `json:"done"`
	Info       engine.Info    `json:"info,omitempty"`
	Turn       int            `json:"turn"`
	NextPlayer int            `json:"next_player"`

	// InvalidMoves is the acting player's cumulative invalid-move count;
	// callers decide whether and how to penalize.
	InvalidMoves int          `json:"invalid_moves"`
	Outcome      turn.Outcome `json:"outcome"`
}

// ObservationResult carries a player's rendered observation string
type ObservationResult struct {
	Player        int    `json:"player"`
	Observation   string `json:"observation"`
	CurrentPlayer int    `json:"current_player"`
	YourTurn      bool   `json:"your_turn"`
	Done          bool   `json:"done"`
}

// TranscriptOptions configures transcript retrieval
type TranscriptOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// TranscriptResponse contains a paginated game transcript
type TranscriptResponse struct {
	Records      []turn.Record `json:"records"`
	TotalRecords int           `json:"total_records"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	TotalPages   int           `json:"total_pages"`
	HasNext      bool          `json:"has_next"`
	HasPrevious  bool          `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`
	Description string `json:"description"`
	NumPlayers  int    `json:"num_players"`
	MaxTurns    int    `json:"max_turns"`
}
