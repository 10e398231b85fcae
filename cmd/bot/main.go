// Command bot plays the game unattended against a running server. Each round
// it fetches the session state, plans a route to the food, and submits the
// whole heading sequence as one bulk tick. It keeps playing until the target
// score is reached or the planner runs out of safe moves.
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

	"github.com/gridgames/snake-game/game/service"
)

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

func (c *Client) CreateSession(configID string) (*service.SessionInfo, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
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

	var session service.SessionInfo
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return &session, nil
}

func (c *Client) GetSession() (*service.SessionInfo, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get session failed: %s - %s", resp.Status, string(body))
	}

	var session service.SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	return &session, nil
}

func (c *Client) BulkTick(headings []string) (*service.BulkTickResult, error) {
	body, err := json.Marshal(map[string]interface{}{"headings": headings})
	if err != nil {
		return nil, fmt.Errorf("marshal bulk tick: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/bulk-tick", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("bulk tick: %w", err)
	}
	defer resp.Body.Close()

	var result service.BulkTickResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parse bulk tick response: %w", err)
	}

	return &result, nil
}

func (c *Client) Reset() error {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	resp.Body.Close()
	return nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Board configuration ID (empty = server default)")
	continueSession := flag.String("continue", "", "Drive an existing session by ID")
	targetScore := flag.Int("target", 20, "Stop after reaching this score")
	maxRounds := flag.Int("max-rounds", 1000, "Maximum planning rounds before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between rounds in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var session *service.SessionInfo
	var err error

	if *continueSession != "" {
		client.sessionID = *continueSession
		session, err = client.GetSession()
		if err != nil {
			log.Fatalf("Failed to resume session %s: %v", *continueSession, err)
		}
		log.Printf("Resumed session %s (config %s)", session.ID, session.ConfigName)
		if err := client.Reset(); err != nil {
			log.Fatalf("Failed to reset session: %v", err)
		}
	} else {
		session, err = client.CreateSession(*configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("Session created: %s (config %s)", session.ID, session.ConfigName)
	}

	planner := NewPlanner(session.GameConfig)
	bestScore := 0

	for round := 1; round <= *maxRounds; round++ {
		session, err = client.GetSession()
		if err != nil {
			log.Fatalf("Failed to fetch state: %v", err)
		}
		state := session.GameState

		if state.Score() > bestScore {
			bestScore = state.Score()
		}

		if state.GameOver {
			log.Printf("Game over (%s) at score %d after %d ticks", state.Cause, state.Score(), state.Ticks)
			break
		}
		if state.Score() >= *targetScore {
			log.Printf("🎉 Target score %d reached in %d ticks (session %s)", state.Score(), state.Ticks, session.ID)
			os.Exit(0)
		}

		headings := planner.Route(state)
		if len(headings) == 0 {
			log.Printf("⚠️  No safe route found at score %d; stopping", state.Score())
			break
		}

		if *verbose {
			log.Printf("Round %d: score %d, routing %d ticks toward food", round, state.Score(), len(headings))
		}

		result, err := client.BulkTick(headings)
		if err != nil {
			log.Fatalf("Bulk tick failed: %v", err)
		}
		if result.GameOver {
			log.Printf("Game over (%s) at score %d", result.StopReasonCode, result.GameState.Score())
			break
		}

		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	log.Printf("Best score: %d (session %s)", bestScore, client.sessionID)
	if bestScore < *targetScore {
		os.Exit(1)
	}
}
