package session

import (
	"time"

	"github.com/parleygames/parley/game/service"
	"github.com/parleygames/parley/game/turn"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// Undelivered observation queues and accumulated observation history are not
// persisted; a restored player starts from a fresh observation log while the
// ledger, turn position, and outcome carry over exactly.
type PersistedSessionData struct {
	ID             string       `json:"id"`
	ConfigName     string       `json:"config_name"`
	Seed           uint64       `json:"seed"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Turn           int          `json:"turn"`
	CurrentPlayer  int          `json:"current_player"`
	Outcome        turn.Outcome `json:"outcome"`
	GameState      any          `json:"game_state"` // Will be *engine.GameState when loaded
}
