package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/parleygames/parley/game/engine"
	"github.com/parleygames/parley/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Parley Negotiation Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Parley Negotiation Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Players take turns trading resources. Each player values resources differently,
and valuations are private. The player with the most valuable inventory when
the turn limit is reached wins.

AVAILABLE TOOLS:
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- game_state: Get the full game state (inventories, valuations, pending offers)
- act: Submit the current player's action string
- get_observation: Get a player's accumulated view of the game
- transcript: View the game transcript
- reset_game: Reroll the session
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules

ACTION GRAMMAR (used inside the 'action' parameter of the act tool):
- [Broadcast: <text>] - message every player
- [Whisper to Player X: <text>] - private message
- [Offer to Player X: 2 Wheat -> 3 Wood] - propose a trade
- [Accept #ID] / [Deny #ID] - respond to a pending offer

Multiple commands may be combined in one action string.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for starting inventories and valuations (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state including inventories, valuations, and pending offers",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "act",
		Description: "Submit the current player's action string for this turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Acting player id (must be the current player)",
				},
				"action": map[string]interface{}{
					"type":        "string",
					"description": "Action string, e.g. '[Broadcast: hi] [Offer to Player 1: 2 Wheat -> 1 Ore]'",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this action (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "player", "action"},
		},
	}, c.handleAct)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_observation",
		Description: "Get a player's accumulated observation text, including new messages since their last look",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Player id",
				},
			},
			Required: []string{"session_id", "player"},
		},
	}, c.handleGetObservation)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reroll the session with fresh inventories and valuations",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for the new opening (optional)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "transcript",
		Description: "Get the game transcript for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTranscript)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]interface{}{}
	if configName != "" {
		body["config_id"] = configName
	}
	if seed, ok := args["seed"].(float64); ok {
		body["seed"] = uint64(seed)
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nPlayers: %d, Turns: %d\nPlayer 0 acts first.\n",
		session.ID, session.ConfigName, session.NumPlayers, session.MaxTurns)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Turn: %d/%d, Created: %s)\n",
			s.ID, s.ConfigName, s.Turn, s.MaxTurns, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleAct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(float64)
	action, _ := args["action"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"player": int(player),
		"action": action,
	}

	var result service.ActResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/act", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatActResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleGetObservation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(float64)

	var result service.ObservationResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/observation/%d", sessionID, int(player)), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	header := fmt.Sprintf("Observation for Player %d (current player: %d, your turn: %v)\n",
		result.Player, result.CurrentPlayer, result.YourTurn)
	return mcp.NewToolResultText(header + result.Observation), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{}
	if seed, ok := args["seed"].(float64); ok {
		body["seed"] = uint64(seed)
	}

	var response struct {
		Message string               `json:"message"`
		Session *service.SessionInfo `json:"session"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), body, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := response.Message
	if response.Session != nil {
		result += "\n\n" + formatSessionInfo(response.Session)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var transcript service.TranscriptResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/transcript%s", sessionID, params), nil, &transcript)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatTranscript(&transcript)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Players: %d, Turns: %d\n\n",
			config.Name, config.ConfigID, config.Description, config.NumPlayers, config.MaxTurns)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Parley Negotiation Game - Complete Instructions

GAME OBJECTIVE:
Accumulate the most valuable inventory by trading resources with other
players. Each player values resources differently, and valuations are
private: a trade that looks even at face value can be strongly in your
favor. When the turn limit is reached, the player whose inventory is worth
the most under their own valuations wins. Exact ties are a draw.

TURN STRUCTURE:
Players act in fixed rotation, one action string per turn. An action string
may contain any number of bracketed commands. Everything outside brackets
is ignored, so you can think out loud freely.

COMMANDS:
- [Broadcast: <text>] - send a message to every player
- [Whisper to Player X: <text>] - send a private message to one player
- [Offer to Player X: <give> -> <get>] - propose a trade
- [Accept #ID] - accept a pending offer addressed to you
- [Deny #ID] - deny a pending offer addressed to you

OFFER FORMAT:
Each side of the arrow is a comma- or 'and'-separated list of counted
resources, for example:
  [Offer to Player 2: 2 Wheat, 1 Ore -> 3 Wood and 1 Brick]
You must hold the resources you put on the left side when you make the
offer. Resource names are case-insensitive.

OFFER LIFECYCLE:
- Offers get sequential ids (#1, #2, ...) and stay open until accepted,
  denied, or cancelled. There is no limit on open offers.
- Only the addressed player can accept or deny an offer.
- Acceptance re-checks both sides. If the offerer no longer holds the
  goods, the offer is silently cancelled and nobody is penalized. If YOU
  cannot cover the requested side, the accept is an invalid move and the
  offer stays open.
- Offers are NOT withdrawn when you make new ones. Promising the same
  goods in several offers is legal, but only the trades that still clear
  will execute.

INVALID MOVES:
Malformed commands, unknown resources, offers to missing players, and
similar mistakes are recorded as invalid moves. The game continues; the
server reports your cumulative count so operators can apply penalties.

STRATEGY HINTS:
- Work out which resources you value above base and hoard those.
- Offload resources you value below base at face value.
- Watch the public offer announcements to infer other players' valuations.
- Whispers are invisible to third parties: use them to negotiate side
  deals before committing to a public offer.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has unique 4-character ID
- Sessions maintain independent state and configuration
- The same config and seed always reproduces the same opening`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", session.ID)
	fmt.Fprintf(&b, "Config: %s\n", session.ConfigName)
	fmt.Fprintf(&b, "Players: %d\n", session.NumPlayers)
	fmt.Fprintf(&b, "Turn: %d/%d\n", session.Turn, session.MaxTurns)
	fmt.Fprintf(&b, "Current player: %d\n", session.CurrentPlayer)
	if session.Outcome.Done {
		if session.Outcome.Draw {
			fmt.Fprintf(&b, "Result: draw (%s)\n", session.Outcome.Reason)
		} else {
			fmt.Fprintf(&b, "Result: winners %v (%s)\n", session.Outcome.Winners, session.Outcome.Reason)
		}
	}
	fmt.Fprintf(&b, "Created: %s\n", session.CreatedAt.Format(time.RFC3339))
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Players: %d\n\n", state.NumPlayers)

	for pid := 0; pid < state.NumPlayers; pid++ {
		fmt.Fprintf(&b, "Player %d:\n", pid)
		inv := state.Resources[pid]
		vals := state.Valuations[pid]
		for _, r := range state.ResourceNames {
			fmt.Fprintf(&b, "  %-8s count=%-3d value=%d\n", r, inv[r], vals[r])
		}
	}

	if len(state.PendingOffers) == 0 {
		b.WriteString("\nNo pending offers.\n")
	} else {
		fmt.Fprintf(&b, "\nPending offers (%d):\n", len(state.PendingOffers))
		for id := 1; id <= state.OfferCounter; id++ {
			offer, ok := state.PendingOffers[id]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  #%d Player %d -> Player %d: %s for %s\n",
				offer.ID, offer.From, offer.To,
				formatBundle(offer.Offered, state.ResourceNames),
				formatBundle(offer.Requested, state.ResourceNames))
		}
	}

	return b.String()
}

func formatBundle(bundle engine.ResourceBundle, order []engine.Resource) string {
	parts := make([]string, 0, len(bundle))
	for _, r := range order {
		if qty, ok := bundle[r]; ok {
			parts = append(parts, fmt.Sprintf("%d %s", qty, r))
		}
	}
	return strings.Join(parts, ", ")
}

func formatActResult(result *service.ActResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Player %d acted. Turn %d, next player %d.\n", result.Player, result.Turn, result.NextPlayer)

	if len(result.Events) == 0 {
		b.WriteString("No commands recognized in the action string.\n")
	}
	for _, ev := range result.Events {
		switch ev.Kind {
		case engine.EventInvalidMove:
			fmt.Fprintf(&b, "- INVALID (%s): %s\n", ev.Fault, ev.Message)
		case engine.EventOfferCreated:
			fmt.Fprintf(&b, "- offer #%d to Player %d: %s\n", ev.OfferID, ev.Target, ev.Message)
		case engine.EventOfferAccepted:
			fmt.Fprintf(&b, "- accepted offer #%d: %s\n", ev.OfferID, ev.Message)
		case engine.EventOfferDenied:
			fmt.Fprintf(&b, "- denied offer #%d\n", ev.OfferID)
		case engine.EventOfferCancelled:
			fmt.Fprintf(&b, "- offer #%d cancelled: %s\n", ev.OfferID, ev.Message)
		default:
			fmt.Fprintf(&b, "- %s: %s\n", ev.Kind, ev.Message)
		}
	}

	if result.InvalidMoves > 0 {
		fmt.Fprintf(&b, "Cumulative invalid moves for player %d: %d\n", result.Player, result.InvalidMoves)
	}
	if result.Done {
		if result.Outcome.Draw {
			fmt.Fprintf(&b, "GAME OVER: draw. %s\n", result.Outcome.Reason)
		} else {
			fmt.Fprintf(&b, "GAME OVER: winners %v. %s\n", result.Outcome.Winners, result.Outcome.Reason)
		}
	}
	return b.String()
}

func formatTranscript(transcript *service.TranscriptResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transcript (%d records, page %d/%d):\n\n",
		transcript.TotalRecords, transcript.Page, transcript.TotalPages)
	for _, rec := range transcript.Records {
		from := fmt.Sprintf("Player %d", rec.From)
		if rec.From == engine.FromGame {
			from = "GAME"
		}
		to := "all"
		if rec.To >= 0 {
			to = fmt.Sprintf("Player %d", rec.To)
		}
		fmt.Fprintf(&b, "[turn %d] %s -> %s: %s\n", rec.Turn, from, to, rec.Text)
	}
	return b.String()
}
