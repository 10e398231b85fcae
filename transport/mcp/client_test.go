package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gridgames/snake-game/game/engine"
	"github.com/gridgames/snake-game/game/service"
)

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("Expected content in tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestFormatBoard(t *testing.T) {
	config := engine.DefaultGameConfig()
	config.Width = 100
	config.Height = 100
	config.StartX = 0
	config.StartY = 40
	config.GateRow = 40
	config.GateCol = 0

	state := engine.InitGameStateFromConfig(config)
	state.Food = &engine.Position{X: 80, Y: 0}

	board := formatBoard(state, config)
	lines := strings.Split(strings.Trim(board, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 rows, got %d", len(lines))
	}
	if lines[0] != "....*" {
		t.Errorf("Expected food in the top-right corner, got %q", lines[0])
	}
	// Body occupies (0,40),(20,40) with the head at (40,40).
	if lines[2] != "oo@.." {
		t.Errorf("Expected body row 'oo@..', got %q", lines[2])
	}
}

func TestFormatTickResult(t *testing.T) {
	tick := &engine.TickResult{
		TickNumber: 7,
		Heading:    engine.Down,
		Score:      2,
		Alive:      true,
		Ate:        true,
	}

	text := formatTickResult(tick)
	if !strings.Contains(text, "Tick 7: moved down, score 2, alive") {
		t.Errorf("Unexpected summary: %q", text)
	}
	if !strings.Contains(text, "Food eaten this tick!") {
		t.Errorf("Expected food note: %q", text)
	}

	terminal := &engine.TickResult{TickNumber: 8, Heading: engine.Down, Alive: false, Cause: "gate"}
	text = formatTickResult(terminal)
	if !strings.Contains(text, "GAME OVER (gate)") {
		t.Errorf("Expected terminal note: %q", text)
	}
}

func TestFormatGameState_GameOver(t *testing.T) {
	config := engine.DefaultGameConfig()
	state := engine.InitGameStateFromConfig(config)
	state.GameOver = true
	state.Cause = "self_collision"
	state.Message = "You bit yourself! Game Over!"

	text := formatGameState(state, config)
	if !strings.Contains(text, "GAME OVER (self_collision)") {
		t.Errorf("Expected game over marker: %q", text)
	}
	if !strings.Contains(text, "You bit yourself!") {
		t.Errorf("Expected the message: %q", text)
	}
}

// newFakeAPI serves canned REST responses for handler tests.
func newFakeAPI(t *testing.T) (*httptest.Server, *service.SessionInfo) {
	t.Helper()

	config := engine.DefaultGameConfig()
	config.Width = 100
	config.Height = 100
	config.StartX = 0
	config.StartY = 40
	config.GateRow = 40
	config.GateCol = 0

	info := &service.SessionInfo{
		ID:         "ab12",
		ConfigName: "classic",
		GameState:  engine.InitGameStateFromConfig(config),
		GameConfig: config,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(info)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count":    1,
			"sessions": []*service.SessionInfo{info},
		})
	})
	mux.HandleFunc("/api/sessions/ab12", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(info)
	})
	mux.HandleFunc("/api/sessions/ab12/heading", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(&service.HeadingResult{Accepted: true, Heading: engine.Down})
	})
	mux.HandleFunc("/api/sessions/ab12/tick", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(&service.TickOutcome{
			Result: &engine.TickResult{TickNumber: 1, Heading: engine.Right, Alive: true},
		})
	})
	mux.HandleFunc("/api/scores", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 1,
			"scores": []service.ScoreEntry{
				{SessionID: "ab12", ConfigName: "classic", Score: 5, Length: 8, Ticks: 90, Cause: "gate"},
			},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, info
}

func TestHandleCreateSession(t *testing.T) {
	server, _ := newFakeAPI(t)
	client := NewClient(server.URL)

	result, err := client.handleCreateSession(context.Background(), toolRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Created session: ab12") {
		t.Errorf("Expected session ID in output: %q", text)
	}
	if !strings.Contains(text, "@") {
		t.Errorf("Expected an ASCII board with the head: %q", text)
	}
}

func TestHandleSetHeading(t *testing.T) {
	server, _ := newFakeAPI(t)
	client := NewClient(server.URL)

	result, err := client.handleSetHeading(context.Background(), toolRequest(map[string]interface{}{
		"session_id": "ab12",
		"heading":    "down",
	}))
	if err != nil {
		t.Fatalf("handleSetHeading failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Heading set to down") {
		t.Errorf("Unexpected output: %q", text)
	}
}

func TestHandleTick(t *testing.T) {
	server, _ := newFakeAPI(t)
	client := NewClient(server.URL)

	result, err := client.handleTick(context.Background(), toolRequest(map[string]interface{}{
		"session_id": "ab12",
		"intent":     "move toward the food",
	}))
	if err != nil {
		t.Fatalf("handleTick failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Tick 1: moved right") {
		t.Errorf("Expected tick summary: %q", text)
	}
}

func TestHandleHighScores(t *testing.T) {
	server, _ := newFakeAPI(t)
	client := NewClient(server.URL)

	result, err := client.handleHighScores(context.Background(), toolRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleHighScores failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "score 5, length 8") {
		t.Errorf("Expected the score entry: %q", text)
	}
}

func TestHandleGameState_Error(t *testing.T) {
	server, _ := newFakeAPI(t)
	client := NewClient(server.URL)

	result, err := client.handleGameState(context.Background(), toolRequest(map[string]interface{}{
		"session_id": "zzzz",
	}))
	if err != nil {
		t.Fatalf("handleGameState returned a transport error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected a tool-level error result for an unknown session")
	}
}
