package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Wire types mirror the server's JSON. Integer-keyed maps arrive with
// string keys because that is how encoding/json renders them.

type Bundle map[string]int

type Offer struct {
	ID        int    `json:"id"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Offered   Bundle `json:"offered"`
	Requested Bundle `json:"requested"`
}

type GameState struct {
	NumPlayers    int               `json:"num_players"`
	ResourceNames []string          `json:"resource_names"`
	Resources     map[string]Bundle `json:"resources"`
	Valuations    map[string]Bundle `json:"valuations"`
	PendingOffers map[string]*Offer `json:"pending_offers"`
	OfferCounter  int               `json:"offer_counter"`
}

type Outcome struct {
	Done    bool   `json:"done"`
	Winners []int  `json:"winners"`
	Draw    bool   `json:"draw"`
	Reason  string `json:"reason"`
}

type SessionResponse struct {
	ID            string     `json:"id"`
	ConfigName    string     `json:"config_name"`
	NumPlayers    int        `json:"num_players"`
	MaxTurns      int        `json:"max_turns"`
	Turn          int        `json:"turn"`
	CurrentPlayer int        `json:"current_player"`
	Outcome       Outcome    `json:"outcome"`
	GameState     *GameState `json:"game_state"`
}

type ActRequest struct {
	Player int    `json:"player"`
	Action string `json:"action"`
}

type ActResult struct {
	Player       int     `json:"player"`
	Done         bool    `json:"done"`
	Turn         int     `json:"turn"`
	NextPlayer   int     `json:"next_player"`
	InvalidMoves int     `json:"invalid_moves"`
	Outcome      Outcome `json:"outcome"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configName string, seed uint64) (*SessionResponse, error) {
	reqBody, err := json.Marshal(map[string]interface{}{
		"config_id": configName,
		"seed":      seed,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return &session, nil
}

func (c *Client) GetSession() (*SessionResponse, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	return &session, nil
}

func (c *Client) Act(player int, action string) (*ActResult, error) {
	body, err := json.Marshal(ActRequest{Player: player, Action: action})
	if err != nil {
		return nil, fmt.Errorf("marshal act: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/act", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute act: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("act failed: %s - %s", resp.Status, string(respBody))
	}

	var result ActResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse act response: %w", err)
	}

	return &result, nil
}

type ResetResponse struct {
	Message string           `json:"message"`
	Session *SessionResponse `json:"session"`
}

func (c *Client) Reset(seed uint64) (*SessionResponse, error) {
	body, err := json.Marshal(map[string]uint64{"seed": seed})
	if err != nil {
		return nil, fmt.Errorf("marshal reset: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var resetResp ResetResponse
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}

	return resetResp.Session, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configName := flag.String("config", "", "Game configuration name (classic, duel, grand_bazaar)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	hero := flag.Int("hero", 0, "Player the bot tries to make win")
	seed := flag.Uint64("seed", 1, "Seed for the first attempt (each attempt increments it)")
	maxAttempts := flag.Int("max-attempts", 50, "Maximum games before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between actions in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var session *SessionResponse
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		savedSessionID = *continueSession
	} else {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		client.sessionID = savedSessionID
		log.Printf("Resuming session: %s", client.sessionID)
		session, err = client.GetSession()
		if err != nil {
			log.Printf("Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = ""
		}
	}

	if savedSessionID == "" {
		session, err = client.CreateSession(*configName, *seed)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("Session created: %s", client.sessionID)

		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	log.Printf("Game: %s, players: %d, turns: %d",
		session.ConfigName, session.NumPlayers, session.MaxTurns)
	if *hero < 0 || *hero >= session.NumPlayers {
		log.Fatalf("Hero player %d out of range for a %d player game", *hero, session.NumPlayers)
	}

	// Keep trying fresh seeds until the hero wins or attempts run out
	for attempt := 1; attempt <= *maxAttempts; attempt++ {
		attemptSeed := *seed + uint64(attempt-1)
		session, err = client.Reset(attemptSeed)
		if err != nil {
			log.Fatalf("Failed to reset game: %v", err)
		}

		log.Printf("\n=== Attempt %d/%d (seed %d) ===", attempt, *maxAttempts, attemptSeed)

		strategy := NewGreedyStrategy(*hero)
		actions := 0

		for !session.Outcome.Done {
			current := session.CurrentPlayer
			action := strategy.NextAction(current, session.GameState)

			result, err := client.Act(current, action)
			if err != nil {
				log.Fatalf("Act failed: %v", err)
			}
			actions++

			if *verbose {
				log.Printf("turn %d player %d: %q", result.Turn, current, action)
			}

			session, err = client.GetSession()
			if err != nil {
				log.Fatalf("Failed to refresh session: %v", err)
			}

			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}

		outcome := session.Outcome
		log.Printf("Attempt %d: actions=%d, draw=%v, winners=%v",
			attempt, actions, outcome.Draw, outcome.Winners)
		if outcome.Reason != "" {
			log.Printf("%s", outcome.Reason)
		}

		for _, w := range outcome.Winners {
			if w == *hero {
				log.Printf("\nVICTORY! Player %d won in attempt %d after %d actions", *hero, attempt, actions)
				log.Printf("Session: %s", client.sessionID)
				os.Exit(0)
			}
		}
	}

	log.Printf("\nPlayer %d never won in %d attempts", *hero, *maxAttempts)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
