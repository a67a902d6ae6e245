package turn

import (
	"strconv"
	"strings"

	"github.com/parleygames/parley/game/engine"
)

// Observation is one queued message addressed to a player.
type Observation struct {
	From int    `json:"from"`
	Text string `json:"text"`
}

// Record is one transcript entry kept for logging and replay.
type Record struct {
	Turn int    `json:"turn"`
	From int    `json:"from"`
	To   int    `json:"to"`
	Text string `json:"text"`
}

// InvalidMove records one rejected command fragment attributed to a player.
type InvalidMove struct {
	Player int    `json:"player"`
	Turn   int    `json:"turn"`
	Reason string `json:"reason"`
}

// Outcome is the terminal result of a game.
type Outcome struct {
	Done    bool   `json:"done"`
	Winners []int  `json:"winners,omitempty"`
	Draw    bool   `json:"draw"`
	Reason  string `json:"reason,omitempty"`
}

// State is a generic multi-player turn machine: it owns the current player,
// the turn counter, per-recipient observation queues, the invalid-move
// record, and the terminal outcome. It implements engine.TurnController.
// All methods are called from a single goroutine; one game instance is
// never shared between games or threads.
type State struct {
	numPlayers int
	maxTurns   int
	current    int
	turn       int
	queues     [][]Observation
	transcript []Record
	invalid    []InvalidMove
	outcome    Outcome
}

// NewState creates a turn machine for numPlayers players ending after
// maxTurns turns.
func NewState(numPlayers, maxTurns int) *State {
	return &State{
		numPlayers: numPlayers,
		maxTurns:   maxTurns,
		queues:     make([][]Observation, numPlayers),
	}
}

// CurrentPlayer returns the id of the player whose turn it is.
func (s *State) CurrentPlayer() int { return s.current }

// Turn returns the zero-based index of the current turn.
func (s *State) Turn() int { return s.turn }

// MaxTurns returns the configured turn limit.
func (s *State) MaxTurns() int { return s.maxTurns }

// NumPlayers returns the number of players in the game.
func (s *State) NumPlayers() int { return s.numPlayers }

// PushObservation queues text for a recipient. to == engine.ToAll delivers
// to every player; forLog additionally appends the message to the
// transcript.
func (s *State) PushObservation(from, to int, text string, forLog bool) {
	obs := Observation{From: from, Text: text}
	if to == engine.ToAll {
		for pid := range s.queues {
			s.queues[pid] = append(s.queues[pid], obs)
		}
	} else if to >= 0 && to < s.numPlayers {
		s.queues[to] = append(s.queues[to], obs)
	}

	if forLog {
		s.transcript = append(s.transcript, Record{Turn: s.turn, From: from, To: to, Text: text})
	}
}

// Poll drains and returns the observations queued for a player since their
// last poll, in arrival order.
func (s *State) Poll(player int) []Observation {
	if player < 0 || player >= s.numPlayers {
		return nil
	}
	queued := s.queues[player]
	s.queues[player] = nil
	return queued
}

// FlagInvalidMove records a rejected command against a player. The game
// never halts on invalid moves; callers decide whether to penalize.
func (s *State) FlagInvalidMove(player int, reason string) {
	s.invalid = append(s.invalid, InvalidMove{Player: player, Turn: s.turn, Reason: reason})
}

// InvalidMoves returns the full invalid-move record.
func (s *State) InvalidMoves() []InvalidMove { return s.invalid }

// InvalidMoveCount returns how many invalid moves a player has accumulated.
func (s *State) InvalidMoveCount(player int) int {
	count := 0
	for _, im := range s.invalid {
		if im.Player == player {
			count++
		}
	}
	return count
}

// Transcript returns all logged records so far.
func (s *State) Transcript() []Record { return s.transcript }

// DeclareWinners terminates the game with the given winners.
func (s *State) DeclareWinners(ids []int, reason string) {
	s.outcome = Outcome{Done: true, Winners: ids, Reason: reason}
}

// DeclareDraw terminates the game in a draw.
func (s *State) DeclareDraw(reason string) {
	s.outcome = Outcome{Done: true, Draw: true, Reason: reason}
}

// Outcome returns the terminal outcome; Done is false while the game runs.
func (s *State) Outcome() Outcome { return s.outcome }

// Advance moves to the next turn and player. It returns done=true once an
// outcome has been declared or the turn limit is exhausted.
func (s *State) Advance() (bool, engine.Info) {
	s.turn++
	s.current = (s.current + 1) % s.numPlayers

	if !s.outcome.Done && s.maxTurns > 0 && s.turn >= s.maxTurns {
		// The engine normally resolves the winner one turn earlier; this
		// is the backstop for engines that never declare an outcome.
		s.outcome = Outcome{Done: true, Draw: true, Reason: "Turn limit reached."}
	}

	if !s.outcome.Done {
		return false, nil
	}
	return true, s.info()
}

// Restore rewinds the machine to a persisted position.
func (s *State) Restore(turnIndex, current int, outcome Outcome) {
	s.turn = turnIndex
	s.current = current
	s.outcome = outcome
}

func (s *State) info() engine.Info {
	info := engine.Info{"reason": s.outcome.Reason}
	if s.outcome.Draw {
		info["draw"] = "true"
	}
	if len(s.outcome.Winners) > 0 {
		parts := make([]string, len(s.outcome.Winners))
		for i, id := range s.outcome.Winners {
			parts[i] = strconv.Itoa(id)
		}
		info["winners"] = strings.Join(parts, ",")
	}
	return info
}
