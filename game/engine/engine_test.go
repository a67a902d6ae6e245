package engine

import (
	"strings"
	"testing"
)

type pushedObs struct {
	from, to int
	text     string
	forLog   bool
}

type flaggedMove struct {
	player int
	reason string
}

// fakeController is a minimal TurnController so the core runs without any
// transport or agent machinery.
type fakeController struct {
	numPlayers   int
	maxTurns     int
	current      int
	turn         int
	observations []pushedObs
	invalid      []flaggedMove
	winners      []int
	draw         bool
	reason       string
	done         bool
}

func newFakeController(numPlayers, maxTurns int) *fakeController {
	return &fakeController{numPlayers: numPlayers, maxTurns: maxTurns}
}

func (c *fakeController) CurrentPlayer() int { return c.current }
func (c *fakeController) Turn() int          { return c.turn }
func (c *fakeController) MaxTurns() int      { return c.maxTurns }

func (c *fakeController) PushObservation(from, to int, text string, forLog bool) {
	c.observations = append(c.observations, pushedObs{from: from, to: to, text: text, forLog: forLog})
}

func (c *fakeController) FlagInvalidMove(player int, reason string) {
	c.invalid = append(c.invalid, flaggedMove{player: player, reason: reason})
}

func (c *fakeController) DeclareWinners(ids []int, reason string) {
	c.done = true
	c.winners = ids
	c.reason = reason
}

func (c *fakeController) DeclareDraw(reason string) {
	c.done = true
	c.draw = true
	c.reason = reason
}

func (c *fakeController) Advance() (bool, Info) {
	c.turn++
	c.current = (c.current + 1) % c.numPlayers
	if c.done {
		return true, Info{"reason": c.reason}
	}
	return false, nil
}

func testConfig(numPlayers, maxTurns int) *GameConfig {
	config := DefaultConfig()
	config.NumPlayers = numPlayers
	config.MaxTurns = maxTurns
	return config
}

// newTestGame wires an engine over the deterministic two-player ledger
// state from resources_test.go.
func newTestGame(t *testing.T, maxTurns int) (*Negotiation, *fakeController) {
	t.Helper()
	ctrl := newFakeController(2, maxTurns)
	game, err := NewNegotiation(testConfig(2, maxTurns), ctrl)
	if err != nil {
		t.Fatalf("NewNegotiation returned error: %v", err)
	}
	if err := game.SetState(newTestState()); err != nil {
		t.Fatalf("SetState returned error: %v", err)
	}
	return game, ctrl
}

func (c *fakeController) observationsFor(pid int) []pushedObs {
	var out []pushedObs
	for _, obs := range c.observations {
		if obs.to == pid || obs.to == ToAll {
			out = append(out, obs)
		}
	}
	return out
}

func TestReset_PushesInitialPrompts(t *testing.T) {
	ctrl := newFakeController(3, 25)
	game, err := NewNegotiation(testConfig(3, 25), ctrl)
	if err != nil {
		t.Fatalf("NewNegotiation returned error: %v", err)
	}
	game.Reset(42)

	if len(ctrl.observations) != 3 {
		t.Fatalf("got %d observations, want one prompt per player", len(ctrl.observations))
	}
	for pid, obs := range ctrl.observations {
		if obs.from != FromGame {
			t.Errorf("prompt %d sent from %d, want FromGame", pid, obs.from)
		}
		if obs.to != pid {
			t.Errorf("prompt %d addressed to %d, want %d", pid, obs.to, pid)
		}
		if !strings.Contains(obs.text, "[Broadcast:") {
			t.Errorf("prompt %d does not describe the command grammar", pid)
		}
		if !strings.Contains(obs.text, "Game ends after 25 turns") {
			t.Errorf("prompt %d does not name the turn limit", pid)
		}
	}
}

func TestReset_SameSeedSameState(t *testing.T) {
	ctrl := newFakeController(3, 25)
	game, err := NewNegotiation(testConfig(3, 25), ctrl)
	if err != nil {
		t.Fatalf("NewNegotiation returned error: %v", err)
	}

	game.Reset(7)
	first := game.State()
	game.Reset(7)
	second := game.State()

	for pid := 0; pid < 3; pid++ {
		for _, r := range first.ResourceNames {
			if first.Resources[pid][r] != second.Resources[pid][r] {
				t.Errorf("player %d %s count differs across identical seeds", pid, r)
			}
			if first.Valuations[pid][r] != second.Valuations[pid][r] {
				t.Errorf("player %d %s valuation differs across identical seeds", pid, r)
			}
		}
	}
}

func TestStep_SelfEchoIsFirstObservation(t *testing.T) {
	game, ctrl := newTestGame(t, 25)

	action := "[Broadcast: Hello]"
	game.Step(action)

	if len(ctrl.observations) == 0 {
		t.Fatal("no observations pushed")
	}
	echo := ctrl.observations[0]
	if echo.from != 0 || echo.to != 0 || echo.text != action || !echo.forLog {
		t.Errorf("self-echo = %+v, want raw action from player 0 to itself with forLog", echo)
	}
}

func TestStep_BroadcastReachesAll(t *testing.T) {
	game, ctrl := newTestGame(t, 25)

	events, done, _ := game.Step("[Broadcast: Hello everyone]")
	if done {
		t.Fatal("game ended prematurely")
	}
	if len(events) != 1 || events[0].Kind != EventBroadcast {
		t.Fatalf("events = %+v, want one broadcast", events)
	}

	var broadcast *pushedObs
	for i := range ctrl.observations {
		if ctrl.observations[i].to == ToAll {
			broadcast = &ctrl.observations[i]
		}
	}
	if broadcast == nil {
		t.Fatal("no broadcast observation pushed")
	}
	if want := "(Broadcast) Player 0 says: Hello everyone"; broadcast.text != want {
		t.Errorf("broadcast text = %q, want %q", broadcast.text, want)
	}
}

func TestStep_WhisperOnlyReachesTarget(t *testing.T) {
	game, ctrl := newTestGame(t, 25)

	game.Step("[Whisper to 1: secret]")

	for _, obs := range ctrl.observations[1:] { // skip self-echo
		if obs.to == ToAll {
			t.Errorf("whisper leaked as broadcast: %+v", obs)
		}
		if obs.to == 1 && !strings.Contains(obs.text, "secret") {
			t.Errorf("whisper to player 1 lost its content: %q", obs.text)
		}
	}
}

func TestStep_ScenarioOfferThenAccept(t *testing.T) {
	game, ctrl := newTestGame(t, 25)

	// Turn 0: player 0 offers 2 Wheat for 3 Wood.
	events, _, _ := game.Step("[Offer to 1: 2 Wheat -> 3 Wood]")
	if len(events) != 1 || events[0].Kind != EventOfferCreated || events[0].OfferID != 1 {
		t.Fatalf("events = %+v, want offer #1 created", events)
	}
	if ctrl.CurrentPlayer() != 1 {
		t.Fatalf("current player = %d, want 1", ctrl.CurrentPlayer())
	}

	// Turn 1: player 1 accepts.
	events, _, _ = game.Step("[Accept #1]")
	if len(events) != 1 || events[0].Kind != EventOfferAccepted {
		t.Fatalf("events = %+v, want offer accepted", events)
	}

	g := game.State()
	if g.Resources[0][Wheat] != 8 || g.Resources[0][Wood] != 8 {
		t.Errorf("player 0 holds %d Wheat / %d Wood, want 8 / 8", g.Resources[0][Wheat], g.Resources[0][Wood])
	}
	if g.Resources[1][Wheat] != 6 || g.Resources[1][Wood] != 5 {
		t.Errorf("player 1 holds %d Wheat / %d Wood, want 6 / 5", g.Resources[1][Wheat], g.Resources[1][Wood])
	}
	if len(g.PendingOffers) != 0 {
		t.Errorf("pending offers = %d, want 0", len(g.PendingOffers))
	}
	if len(ctrl.invalid) != 0 {
		t.Errorf("invalid moves recorded: %+v", ctrl.invalid)
	}
}

func TestStep_ScenarioCounterpartyWentBroke(t *testing.T) {
	game, ctrl := newTestGame(t, 25)

	game.Step("[Offer to 1: 2 Wheat -> 3 Wood]")

	// Player 0's wheat is spent elsewhere before acceptance.
	game.State().Resources[0][Wheat] = 0

	events, _, _ := game.Step("[Accept #1]")
	if len(events) != 1 || events[0].Kind != EventOfferCancelled {
		t.Fatalf("events = %+v, want offer cancelled", events)
	}
	if len(ctrl.invalid) != 0 {
		t.Errorf("cancellation recorded an invalid move against the acceptor: %+v", ctrl.invalid)
	}

	var notice bool
	for _, obs := range ctrl.observations {
		if obs.from == FromGame && obs.to == ToAll && strings.Contains(obs.text, "cancelled") {
			notice = true
		}
	}
	if !notice {
		t.Error("no system cancellation notice broadcast")
	}
}

func TestStep_ScenarioInvalidOfferTarget(t *testing.T) {
	game, ctrl := newTestGame(t, 25)

	events, _, _ := game.Step("[Broadcast: Hello][Offer to 5: 1 Ore -> 1 Wood]")

	var broadcasts, invalids int
	for _, ev := range events {
		switch ev.Kind {
		case EventBroadcast:
			broadcasts++
		case EventInvalidMove:
			invalids++
			if ev.Fault != FaultAddressing {
				t.Errorf("fault = %s, want addressing", ev.Fault)
			}
		}
	}
	if broadcasts != 1 {
		t.Errorf("broadcasts = %d, want 1 (other fragments still process)", broadcasts)
	}
	if invalids != 1 || len(ctrl.invalid) != 1 {
		t.Errorf("invalid moves = %d/%d, want exactly 1", invalids, len(ctrl.invalid))
	}
	if len(game.State().PendingOffers) != 0 {
		t.Error("offer to invalid player was created")
	}
}

func TestStep_ScenarioMalformedResourceList(t *testing.T) {
	game, ctrl := newTestGame(t, 25)

	events, _, _ := game.Step("[Broadcast: trading time][Offer to 1: two Wheat -> 3 Wood]")

	var broadcastSeen bool
	var parseFault bool
	for _, ev := range events {
		if ev.Kind == EventBroadcast {
			broadcastSeen = true
		}
		if ev.Kind == EventInvalidMove && ev.Fault == FaultParse {
			parseFault = true
		}
	}
	if !broadcastSeen {
		t.Error("broadcast in the same action was not processed")
	}
	if !parseFault {
		t.Errorf("no parse-fault invalid move recorded; events = %+v", events)
	}
	if len(ctrl.invalid) != 1 {
		t.Errorf("invalid moves = %d, want 1", len(ctrl.invalid))
	}
	if len(game.State().PendingOffers) != 0 {
		t.Error("malformed offer was created")
	}
}

func TestStep_OfferCreatedThisTurnCannotBeAcceptedSameAction(t *testing.T) {
	game, _ := newTestGame(t, 25)

	// Accepts dispatch after offers, but the freshly created offer is
	// addressed to player 1, so player 0's same-string accept is rejected.
	events, _, _ := game.Step("[Offer to 1: 2 Wheat -> 3 Wood][Accept #1]")

	var created, invalid bool
	for _, ev := range events {
		if ev.Kind == EventOfferCreated {
			created = true
		}
		if ev.Kind == EventInvalidMove {
			invalid = true
		}
	}
	if !created || !invalid {
		t.Fatalf("events = %+v, want offer created plus rejected accept", events)
	}
	if _, ok := game.State().PendingOffers[1]; !ok {
		t.Error("offer #1 should still be pending")
	}
}

func TestStep_EmptyActionIsUneventful(t *testing.T) {
	game, ctrl := newTestGame(t, 25)

	events, done, _ := game.Step("")
	if len(events) != 0 {
		t.Errorf("events = %+v, want none", events)
	}
	if done {
		t.Error("empty action ended the game")
	}
	if len(ctrl.invalid) != 0 {
		t.Errorf("empty action recorded invalid moves: %+v", ctrl.invalid)
	}
	if ctrl.CurrentPlayer() != 1 {
		t.Errorf("turn did not advance: current player = %d", ctrl.CurrentPlayer())
	}
}

func TestStep_WinnerDeclaredAtTurnLimit(t *testing.T) {
	game, ctrl := newTestGame(t, 2)

	// Player 1's inventory value (238) beats player 0's (235).
	if _, done, _ := game.Step("[Broadcast: opening]"); done {
		t.Fatal("game ended before the final turn")
	}
	_, done, _ := game.Step("")

	if !done {
		t.Fatal("game did not end at the turn limit")
	}
	if ctrl.draw {
		t.Fatalf("draw declared, want winner; reason: %s", ctrl.reason)
	}
	if len(ctrl.winners) != 1 || ctrl.winners[0] != 1 {
		t.Errorf("winners = %v, want [1]", ctrl.winners)
	}
	if !strings.Contains(ctrl.reason, "238") {
		t.Errorf("reason %q does not cite the winning value", ctrl.reason)
	}
}

func TestStep_TiedValuesDeclareDraw(t *testing.T) {
	ctrl := newFakeController(2, 1)
	game, err := NewNegotiation(testConfig(2, 1), ctrl)
	if err != nil {
		t.Fatalf("NewNegotiation returned error: %v", err)
	}
	state := newTestState()
	// Mirror inventories and valuations so both players score identically.
	state.Resources[1] = state.Resources[0].Clone()
	state.Valuations[1] = state.Valuations[0].Clone()
	if err := game.SetState(state); err != nil {
		t.Fatalf("SetState returned error: %v", err)
	}

	_, done, _ := game.Step("")
	if !done {
		t.Fatal("game did not end at the turn limit")
	}
	if !ctrl.draw {
		t.Fatalf("winner declared (%v), want draw", ctrl.winners)
	}
	if !strings.Contains(ctrl.reason, "[0 1]") {
		t.Errorf("draw reason %q does not name the tied players", ctrl.reason)
	}
}
