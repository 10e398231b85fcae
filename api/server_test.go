package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridgames/snake-game/game/config"
	"github.com/gridgames/snake-game/game/engine"
	"github.com/gridgames/snake-game/game/service"
	"github.com/gridgames/snake-game/game/session"
	"github.com/gridgames/snake-game/scoreboard"
	"github.com/gridgames/snake-game/transport/websocket"
)

func apiTestConfig(name string, mode engine.BoundaryMode) *engine.GameConfig {
	cfg := engine.DefaultGameConfig()
	cfg.Name = name
	cfg.Width = 100
	cfg.Height = 100
	cfg.StartX = 0
	cfg.StartY = 40
	cfg.GateRow = 40
	cfg.GateCol = 0
	cfg.BoundaryMode = mode
	cfg.FoodSeed = 1
	return cfg
}

func writeConfigFile(t *testing.T, dir, id string, cfg *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

// newTestServer wires a complete stack: real managers, a temp-dir config
// store, and a temp sqlite scoreboard.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", apiTestConfig("classic", engine.BoundaryRail))
	writeConfigFile(t, dir, "wall", apiTestConfig("walled", engine.BoundaryWall))
	writeConfigFile(t, dir, "wrap", apiTestConfig("toroidal", engine.BoundaryWrap))

	configs, err := config.NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	scores, err := scoreboard.NewStore(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Failed to create scoreboard: %v", err)
	}
	t.Cleanup(func() { scores.Close() })

	svc := service.NewGameService(session.NewManager(), configs, scores)

	hub := websocket.NewHub()
	go hub.Run()

	server := httptest.NewServer(NewServer(svc, hub))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func createSession(t *testing.T, server *httptest.Server, configID string) *service.SessionInfo {
	t.Helper()
	resp := postJSON(t, server.URL+"/api/sessions", map[string]string{"config_id": configID})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var info service.SessionInfo
	decodeJSON(t, resp, &info)
	return &info
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET health failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %q", body["status"])
	}
}

func TestCreateSession(t *testing.T) {
	server := newTestServer(t)

	info := createSession(t, server, "")
	if info.ID == "" {
		t.Error("Expected a session ID")
	}
	if info.ConfigName != "classic" {
		t.Errorf("Expected classic config, got %q", info.ConfigName)
	}
	if len(info.GameState.Body) != 3 {
		t.Errorf("Expected 3 segments, got %d", len(info.GameState.Body))
	}
}

func TestCreateSession_NamedAndUnknownConfig(t *testing.T) {
	server := newTestServer(t)

	info := createSession(t, server, "wall")
	if info.GameConfig.BoundaryMode != engine.BoundaryWall {
		t.Errorf("Expected wall mode, got %q", info.GameConfig.BoundaryMode)
	}

	resp := postJSON(t, server.URL+"/api/sessions", map[string]string{"config_id": "bogus"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500 for unknown config, got %d", resp.StatusCode)
	}
}

func TestGetSession(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server, "")

	resp, err := http.Get(server.URL + "/api/sessions/" + info.ID)
	if err != nil {
		t.Fatalf("GET session failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	var got service.SessionInfo
	decodeJSON(t, resp, &got)
	if got.ID != info.ID {
		t.Errorf("Expected session %s, got %s", info.ID, got.ID)
	}

	resp, _ = http.Get(server.URL + "/api/sessions/zzzz")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", resp.StatusCode)
	}
}

func TestListSessions(t *testing.T) {
	server := newTestServer(t)
	createSession(t, server, "")
	createSession(t, server, "wrap")

	resp, err := http.Get(server.URL + "/api/sessions?limit=1")
	if err != nil {
		t.Fatalf("GET sessions failed: %v", err)
	}
	var body struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	decodeJSON(t, resp, &body)
	if body.Count != 1 || len(body.Sessions) != 1 {
		t.Errorf("Expected 1 session with limit=1, got %d", body.Count)
	}
}

func TestSetHeading(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server, "")
	url := server.URL + "/api/sessions/" + info.ID + "/heading"

	resp := postJSON(t, url, map[string]string{"heading": "down"})
	var result service.HeadingResult
	decodeJSON(t, resp, &result)
	if !result.Accepted {
		t.Errorf("Expected heading change accepted: %s", result.Message)
	}

	// Reversal rejected but still a 200: the rejection is game semantics,
	// not a transport error.
	resp = postJSON(t, url, map[string]string{"heading": "up"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	decodeJSON(t, resp, &result)
	if result.Accepted {
		t.Error("Expected reversal to be rejected")
	}
	if result.Heading != engine.Down {
		t.Errorf("Expected committed heading down, got %q", result.Heading)
	}
}

func TestTick(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server, "wrap")
	url := server.URL + "/api/sessions/" + info.ID + "/tick"

	resp := postJSON(t, url, map[string]interface{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var outcome service.TickOutcome
	decodeJSON(t, resp, &outcome)
	if outcome.Result.TickNumber != 1 {
		t.Errorf("Expected tick 1, got %d", outcome.Result.TickNumber)
	}
	if !outcome.Result.Alive {
		t.Error("Expected the snake to stay alive")
	}

	// Inline heading applies before the step.
	resp = postJSON(t, url, map[string]interface{}{"heading": "down"})
	decodeJSON(t, resp, &outcome)
	if outcome.Result.Heading != engine.Down {
		t.Errorf("Expected heading down, got %q", outcome.Result.Heading)
	}
}

func TestBulkTick(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server, "wrap")
	url := server.URL + "/api/sessions/" + info.ID + "/bulk-tick"

	resp := postJSON(t, url, map[string]interface{}{
		"headings": []string{"down", "", "right"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var result service.BulkTickResult
	decodeJSON(t, resp, &result)
	if result.TicksExecuted != 3 {
		t.Errorf("Expected 3 ticks, got %d", result.TicksExecuted)
	}
	if result.GameOver {
		t.Error("Expected a live session")
	}
}

func TestReset(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server, "wrap")

	postJSON(t, server.URL+"/api/sessions/"+info.ID+"/tick", map[string]interface{}{}).Body.Close()

	resp := postJSON(t, server.URL+"/api/sessions/"+info.ID+"/reset", map[string]interface{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		State *engine.GameState `json:"state"`
	}
	decodeJSON(t, resp, &body)
	if body.State.Ticks != 0 {
		t.Errorf("Expected tick counter 0 after reset, got %d", body.State.Ticks)
	}
}

func TestGetHistory(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server, "wrap")

	postJSON(t, server.URL+"/api/sessions/"+info.ID+"/bulk-tick", map[string]interface{}{
		"headings": make([]string, 5),
	}).Body.Close()

	resp, err := http.Get(server.URL + "/api/sessions/" + info.ID + "/history?order=asc&limit=3")
	if err != nil {
		t.Fatalf("GET history failed: %v", err)
	}
	var history service.HistoryResponse
	decodeJSON(t, resp, &history)
	if history.TotalTicks != 5 {
		t.Errorf("Expected 5 total ticks, got %d", history.TotalTicks)
	}
	if len(history.Ticks) != 3 {
		t.Errorf("Expected 3 ticks on the page, got %d", len(history.Ticks))
	}
	if history.Ticks[0].TickNumber != 1 {
		t.Errorf("Expected oldest tick first, got %d", history.Ticks[0].TickNumber)
	}
}

func TestGetFrame(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server, "")

	resp, err := http.Get(server.URL + "/api/sessions/" + info.ID + "/frame.png")
	if err != nil {
		t.Fatalf("GET frame failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("Expected a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("Expected 100px frame, got %d", img.Bounds().Dx())
	}
}

func TestConfigEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/configs")
	if err != nil {
		t.Fatalf("GET configs failed: %v", err)
	}
	var configs []*service.ConfigInfo
	decodeJSON(t, resp, &configs)
	if len(configs) != 3 {
		t.Errorf("Expected 3 configs, got %d", len(configs))
	}

	resp, _ = http.Get(server.URL + "/api/configs/wall")
	var cfg engine.GameConfig
	decodeJSON(t, resp, &cfg)
	if cfg.BoundaryMode != engine.BoundaryWall {
		t.Errorf("Expected wall mode, got %q", cfg.BoundaryMode)
	}

	// Save a new config and create a session from it.
	saved := apiTestConfig("custom", engine.BoundaryWrap)
	resp = postJSON(t, server.URL+"/api/configs", saved)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	info := createSession(t, server, "custom")
	if info.GameConfig.Name != "custom" {
		t.Errorf("Expected custom config, got %q", info.GameConfig.Name)
	}
}

func TestScoresAfterGameOver(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server, "wall")
	url := server.URL + "/api/sessions/" + info.ID + "/tick"

	// Drive straight into the east wall.
	var outcome service.TickOutcome
	for i := 0; i < 10; i++ {
		resp := postJSON(t, url, map[string]interface{}{})
		decodeJSON(t, resp, &outcome)
		if !outcome.Result.Alive {
			break
		}
	}
	if outcome.Result.Alive {
		t.Fatal("Expected the session to end at the wall")
	}

	resp, err := http.Get(server.URL + "/api/scores")
	if err != nil {
		t.Fatalf("GET scores failed: %v", err)
	}
	var body struct {
		Count  int                  `json:"count"`
		Scores []service.ScoreEntry `json:"scores"`
	}
	decodeJSON(t, resp, &body)
	if body.Count != 1 {
		t.Fatalf("Expected 1 recorded score, got %d", body.Count)
	}
	if body.Scores[0].SessionID != info.ID || body.Scores[0].Cause != "wall" {
		t.Errorf("Unexpected score entry %+v", body.Scores[0])
	}
}

func TestDeleteSession(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server, "")

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/sessions/%s", server.URL, info.ID), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	resp, _ = http.Get(server.URL + "/api/sessions/" + info.ID)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/ws")
	if err != nil {
		t.Fatalf("GET /ws failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 without session param, got %d", resp.StatusCode)
	}

	resp, _ = http.Get(server.URL + "/ws?session=zzzz")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", resp.StatusCode)
	}
}
