package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Info carries terminal details back to the driver loop.
type Info map[string]string

// TurnController is the contract the negotiation engine consumes from the
// surrounding turn/state machine. It owns the current player, turn counter,
// per-player observation queues, and the terminal outcome; the engine never
// touches any of that directly, so the core can be tested against a fake.
type TurnController interface {
	CurrentPlayer() int
	Turn() int
	MaxTurns() int
	PushObservation(from, to int, text string, forLog bool)
	FlagInvalidMove(player int, reason string)
	DeclareWinners(ids []int, reason string)
	DeclareDraw(reason string)
	Advance() (done bool, info Info)
}

// Negotiation is the per-turn orchestrator for one negotiation game: it
// parses the current player's raw action, dispatches each command against
// the resource and offer ledgers, emits observations through the turn
// controller, and resolves the winner at the turn limit.
type Negotiation struct {
	config *GameConfig
	state  *GameState
	ctrl   TurnController
}

// NewNegotiation creates an engine over a validated configuration. Call
// Reset before the first Step.
func NewNegotiation(config *GameConfig, ctrl TurnController) (*Negotiation, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if ctrl == nil {
		return nil, fmt.Errorf("turn controller cannot be nil")
	}
	return &Negotiation{config: config, ctrl: ctrl}, nil
}

// Reset rolls fresh starting inventories and private valuations from the
// seed and pushes each player's initial prompt.
func (n *Negotiation) Reset(seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	n.state = InitGameStateFromConfig(n.config, rng)
	for pid := 0; pid < n.config.NumPlayers; pid++ {
		n.ctrl.PushObservation(FromGame, pid, n.PlayerPrompt(pid), true)
	}
}

// State returns the current game state
func (n *Negotiation) State() *GameState {
	return n.state
}

// SetState replaces the game state (used for persistence loading)
func (n *Negotiation) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.NumPlayers != n.config.NumPlayers {
		return fmt.Errorf("state has %d players, config expects %d", state.NumPlayers, n.config.NumPlayers)
	}
	n.state = state
	return nil
}

// Config returns the game configuration
func (n *Negotiation) Config() *GameConfig {
	return n.config
}

// PlayerPrompt renders a player's initial observation: their resource
// counts, their private valuations, and the command grammar.
func (n *Negotiation) PlayerPrompt(pid int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are Player %d in a multi-player game of Negotiation.\n", pid)
	b.WriteString("You have:\n")
	for _, r := range n.state.ResourceNames {
		fmt.Fprintf(&b, "- %d x %s (value: %d each)\n", n.state.Resources[pid][r], r, n.state.Valuations[pid][r])
	}
	b.WriteString("\nYou can broadcast messages, whisper to someone privately, or make trade offers.\n")
	b.WriteString("You can also accept or deny any offers you received previously.\n")
	b.WriteString("Your valuations are private; your goal is to maximize your total inventory value.\n")
	b.WriteString("Available actions:\n")
	b.WriteString("  [Broadcast: Some message] - Send a message to all players\n")
	b.WriteString("  [Whisper to X: Some message] - Send a private message to player X\n")
	b.WriteString("  [Offer to X: 2 Wheat -> 3 Wood] - Make a trade offer to player X\n")
	b.WriteString("  [Accept #2], [Deny #3] - Accept or deny a pending trade offer\n")
	b.WriteString("You may combine multiple actions in a single turn if you like.\n")
	fmt.Fprintf(&b, "Game ends after %d turns.\n", n.config.MaxTurns)
	return b.String()
}

// Step processes the current player's full action string for one turn.
// Commands dispatch in fixed class order (broadcasts, whispers, offers,
// then accepts and denies), so an offer created this turn can never be
// accepted by the same action string. At the final turn index the winner is
// resolved before advancing. Malformed fragments degrade to recorded
// invalid moves; Step itself never fails.
func (n *Negotiation) Step(action string) ([]Event, bool, Info) {
	pid := n.ctrl.CurrentPlayer()

	// Echo the raw action back to the actor for audit/logging.
	n.ctrl.PushObservation(pid, pid, action, true)

	var events []Event
	for _, cmd := range ParseAction(action) {
		switch cmd.Kind {
		case CmdBroadcast:
			events = append(events, n.processBroadcast(pid, cmd)...)
		case CmdWhisper:
			events = append(events, n.processWhisper(pid, cmd)...)
		case CmdOffer:
			events = append(events, n.processOffer(pid, cmd))
		case CmdAccept:
			events = append(events, n.processAccept(pid, cmd.Target))
		case CmdDeny:
			events = append(events, n.processDeny(pid, cmd.Target))
		}
	}

	if n.ctrl.Turn() == n.ctrl.MaxTurns()-1 {
		n.determineWinner()
	}

	done, info := n.ctrl.Advance()
	return events, done, info
}

func (n *Negotiation) processBroadcast(pid int, cmd Command) []Event {
	if cmd.Text == "" {
		return nil
	}
	n.ctrl.PushObservation(pid, ToAll, fmt.Sprintf("(Broadcast) Player %d says: %s", pid, cmd.Text), false)
	return []Event{{Kind: EventBroadcast, Player: pid, Target: ToAll, Message: cmd.Text}}
}

func (n *Negotiation) processWhisper(pid int, cmd Command) []Event {
	if !n.state.ValidPlayer(cmd.Target) {
		return []Event{n.invalidMove(pid, FaultAddressing,
			fmt.Sprintf("Attempted to whisper to non-existent player %d.", cmd.Target))}
	}
	if cmd.Text == "" {
		return []Event{n.invalidMove(pid, FaultParse, "Empty whisper message.")}
	}
	n.ctrl.PushObservation(pid, cmd.Target, fmt.Sprintf("(Whisper) Player %d says: %s", pid, cmd.Text), false)
	return []Event{{Kind: EventWhisper, Player: pid, Target: cmd.Target, Message: cmd.Text}}
}

func (n *Negotiation) processOffer(pid int, cmd Command) Event {
	if !n.state.ValidPlayer(cmd.Target) {
		return n.invalidMove(pid, FaultAddressing,
			fmt.Sprintf("Offer made to invalid player %d.", cmd.Target))
	}

	offered, requested, err := ParseOfferBody(cmd.Body, n.state.ResourceNames)
	if err != nil {
		return n.invalidMove(pid, FaultParse, err.Error())
	}

	offer, err := n.state.CreateOffer(pid, cmd.Target, offered, requested)
	if err != nil {
		return n.invalidMove(pid, FaultResources,
			fmt.Sprintf("You do not hold enough resources to offer %s to Player %d.",
				n.describeBundle(offered), cmd.Target))
	}

	n.ctrl.PushObservation(FromGame, ToAll,
		fmt.Sprintf("Offer #%d created: Player %d -> Player %d.", offer.ID, offer.From, offer.To), false)
	n.ctrl.PushObservation(FromGame, offer.To,
		fmt.Sprintf("You have a new offer [ID #%d] from Player %d: %s\nYou can [Accept #%d] or [Deny #%d] it.",
			offer.ID, offer.From, n.describeOffer(offer), offer.ID, offer.ID), false)

	return Event{Kind: EventOfferCreated, Player: pid, Target: offer.To, OfferID: offer.ID,
		Message: n.describeOffer(offer)}
}

func (n *Negotiation) processAccept(pid, offerID int) Event {
	offer, cancelled, err := n.state.AcceptOffer(pid, offerID)
	switch {
	case err == ErrOfferNotFound:
		return n.invalidMove(pid, FaultAddressing, fmt.Sprintf("Offer #%d does not exist.", offerID))
	case err == ErrNotAddressee:
		return n.invalidMove(pid, FaultAddressing, fmt.Sprintf("Offer #%d is not addressed to you.", offerID))
	case err == ErrInsufficientResources:
		return n.invalidMove(pid, FaultResources,
			fmt.Sprintf("You do not have enough resources to fulfill Offer #%d.", offerID))
	case cancelled:
		n.ctrl.PushObservation(FromGame, ToAll,
			fmt.Sprintf("Offer #%d cancelled: Player %d no longer has enough resources to fulfill it.",
				offerID, offer.From), false)
		return Event{Kind: EventOfferCancelled, Player: pid, Target: offer.From, OfferID: offerID,
			Message: "offering player can no longer cover the offer"}
	}

	n.ctrl.PushObservation(FromGame, ToAll,
		fmt.Sprintf("Player %d ACCEPTED Offer #%d from Player %d: %s",
			pid, offerID, offer.From, n.describeOffer(offer)), false)
	return Event{Kind: EventOfferAccepted, Player: pid, Target: offer.From, OfferID: offerID,
		Message: n.describeOffer(offer)}
}

func (n *Negotiation) processDeny(pid, offerID int) Event {
	offer, err := n.state.DenyOffer(pid, offerID)
	switch {
	case err == ErrOfferNotFound:
		return n.invalidMove(pid, FaultAddressing, fmt.Sprintf("Offer #%d does not exist.", offerID))
	case err == ErrNotAddressee:
		return n.invalidMove(pid, FaultAddressing, fmt.Sprintf("Offer #%d is not addressed to you.", offerID))
	}

	n.ctrl.PushObservation(FromGame, ToAll,
		fmt.Sprintf("Player %d DENIED Offer #%d from Player %d.", pid, offerID, offer.From), false)
	return Event{Kind: EventOfferDenied, Player: pid, Target: offer.From, OfferID: offerID}
}

// invalidMove records a rejected fragment against the acting player and
// returns the matching event.
func (n *Negotiation) invalidMove(pid int, fault Fault, reason string) Event {
	n.ctrl.FlagInvalidMove(pid, reason)
	return Event{Kind: EventInvalidMove, Player: pid, Fault: fault, Message: reason}
}

// describeOffer renders an offer body like "2 Wheat -> 3 Wood".
func (n *Negotiation) describeOffer(offer *Offer) string {
	return fmt.Sprintf("%s -> %s", n.describeBundle(offer.Offered), n.describeBundle(offer.Requested))
}

// describeBundle lists bundle entries in the configured resource order so
// output is deterministic.
func (n *Negotiation) describeBundle(bundle ResourceBundle) string {
	parts := make([]string, 0, len(bundle))
	for _, r := range n.state.ResourceNames {
		if qty, ok := bundle[r]; ok {
			parts = append(parts, fmt.Sprintf("%d %s", qty, r))
		}
	}
	return strings.Join(parts, ", ")
}
