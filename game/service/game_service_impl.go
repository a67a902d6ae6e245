package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/parleygames/parley/game/engine"
	"github.com/parleygames/parley/game/turn"
)

var (
	ErrGameOver      = errors.New("game is already over")
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrInvalidPlayer = errors.New("invalid player id")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// sessionInfo builds the API view of a session.
func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		NumPlayers:     sess.Config.NumPlayers,
		MaxTurns:       sess.Config.MaxTurns,
		Turn:           sess.Turns.Turn(),
		CurrentPlayer:  sess.Turns.CurrentPlayer(),
		Outcome:        sess.Turns.Outcome(),
		GameState:      sess.Game.State(),
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, seed uint64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Act processes one player's raw action string for the current turn. The
// service serializes all writes, so a session's engine is never entered
// concurrently.
func (s *gameServiceImpl) Act(ctx context.Context, sessionID string, player int, action string) (*ActResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if sess.Turns.Outcome().Done {
		return nil, ErrGameOver
	}
	if player < 0 || player >= sess.Config.NumPlayers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	if current := sess.Turns.CurrentPlayer(); player != current {
		return nil, fmt.Errorf("%w: it is player %d's turn", ErrNotYourTurn, current)
	}

	events, done, info := sess.Game.Step(action)
	if events == nil {
		events = []engine.Event{}
	}

	// Auto-save session after the turn
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after act: %v", sessionID, err)
	}

	return &ActResult{
		Player:       player,
		Events:       events,
		Done:         done,
		Info:         info,
		Turn:         sess.Turns.Turn(),
		NextPlayer:   sess.Turns.CurrentPlayer(),
		InvalidMoves: sess.Turns.InvalidMoveCount(player),
		Outcome:      sess.Turns.Outcome(),
	}, nil
}

// Observation drains a player's queued messages into their accumulated
// history and returns the rendered observation string.
func (s *gameServiceImpl) Observation(ctx context.Context, sessionID string, player int) (*ObservationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if player < 0 || player >= sess.Config.NumPlayers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}

	sess.Renderer.Append(player, sess.Turns.Poll(player))

	return &ObservationResult{
		Player:        player,
		Observation:   sess.Renderer.Render(player),
		CurrentPlayer: sess.Turns.CurrentPlayer(),
		YourTurn:      sess.Turns.CurrentPlayer() == player && !sess.Turns.Outcome().Done,
		Done:          sess.Turns.Outcome().Done,
	}, nil
}

// Reset recreates a session under the same id with fresh inventories and
// valuations rolled from the given seed.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string, seed uint64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	config := sess.Config
	id := sess.ID

	if err := s.sessions.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}
	fresh, err := s.sessions.Create(id, config, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}

	return s.sessionInfo(fresh, ""), nil
}

// GetGameState returns the current game state for a session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sess.Game.State(), nil
}

// GetTranscript returns the paginated game transcript
func (s *gameServiceImpl) GetTranscript(ctx context.Context, sessionID string, opts TranscriptOptions) (*TranscriptResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	transcript := sess.Turns.Transcript()
	total := len(transcript)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var records []turn.Record
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			records = append(records, transcript[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			records = transcript[start:end]
		}
	}
	if records == nil {
		records = []turn.Record{}
	}

	return &TranscriptResponse{
		Records:      records,
		TotalRecords: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	config, err := s.configs.LoadConfig(configName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
	}
	return config, nil
}

// SaveConfig validates and persists a game configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return s.configs.SaveConfig(configName, config)
}
