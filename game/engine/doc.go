// Package engine provides the core logic for the negotiation game.
//
// The engine package implements the game mechanics including:
//   - Free-text command extraction (broadcast, whisper, offer, accept, deny)
//   - The pending-offer ledger with sequential, never-reused offer ids
//   - Checked, atomic resource exchanges between players
//   - Private per-player valuations and end-of-game winner resolution
//   - Configuration validation and seeded game-state initialization
//
// Core Types:
//
// Negotiation is the per-turn orchestrator; it consumes the TurnController
// interface so the core runs without any transport or agent machinery.
// GameState is the single owned aggregate of resources, valuations, pending
// offers, and the offer-id counter. GameConfig defines the economy loaded
// from JSON files.
//
// Usage:
//
//	ctrl := turn.NewState(3, 25)
//	game, err := engine.NewNegotiation(engine.DefaultConfig(), ctrl)
//	if err != nil {
//		log.Fatal(err)
//	}
//	game.Reset(seed)
//
//	events, done, info := game.Step("[Offer to 1: 2 Wheat -> 3 Wood]")
//
// Game Rules:
//
// Players take turns issuing any mix of commands in one action string.
// Broadcasts reach everyone, whispers reach one player, offers propose a
// resource swap that the addressee may later accept or deny. Offers are
// re-validated at acceptance: if the offering side can no longer cover the
// trade the offer is cancelled with a notice instead of penalizing the
// acceptor. After the configured number of turns the player with the
// highest private inventory value wins; ties are a draw.
package engine
