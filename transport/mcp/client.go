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

	"github.com/gridgames/snake-game/game/engine"
	"github.com/gridgames/snake-game/game/service"
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
		"Grid Snake Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Snake Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Steer the snake (@ head, o body) to eat food (*) and grow. The game ends when
the snake bites itself, hits the boundary gate, or hits a wall, depending on
the board's boundary mode.

AVAILABLE TOOLS:
- game_state: Get current game state with an ASCII board
- set_heading: Request a heading change (up/down/left/right) for the next tick
- tick: Advance the simulation one step - requires intent explanation
- bulk_tick: Advance multiple steps at once - requires intent explanation
- reset_game: Reset to initial state
- tick_history: View past ticks
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available board configurations
- high_scores: View the best finished sessions
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on tick/bulk_tick tools serves as rubber duck debugging - explain your reasoning!`),
	)

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
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the board config to use (optional)",
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
		Description: "Get the current game state with an ASCII board rendering",
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
		Name:        "set_heading",
		Description: "Request a heading change for the next tick. Reversals (opposite of the committed heading) are rejected; the snake keeps moving in its committed heading.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"heading": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Heading for the next tick",
				},
			},
			Required: []string{"session_id", "heading"},
		},
	}, c.handleSetHeading)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance the simulation one step, optionally setting the heading first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"heading": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Heading to apply before the step (optional)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this step (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before ticking",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_tick",
		Description: "Advance the simulation multiple steps. Each entry sets the heading for its tick; an empty string keeps the committed heading.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"headings": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right", ""},
					},
					"description": "Per-tick headings; empty string keeps the committed heading",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before ticking",
				},
			},
			Required: []string{"session_id", "headings"},
		},
	}, c.handleBulkTick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to initial state",
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
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tick_history",
		Description: "Get tick history for a session",
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
	}, c.handleTickHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "high_scores",
		Description: "Get the best finished sessions, highest score first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of entries to return (default 10)",
				},
			},
		},
	}, c.handleHighScores)

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
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName,
		formatGameState(session.GameState, session.GameConfig))
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
		status := "running"
		if s.GameState != nil && s.GameState.GameOver {
			status = "over (" + s.GameState.Cause + ")"
		}
		result += fmt.Sprintf("- %s (Config: %s, Status: %s, Created: %s)\n",
			s.ID, s.ConfigName, status, s.CreatedAt.Format("15:04:05"))
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

	result := fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState, session.GameConfig))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	session, err := c.fetchSession(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(session.GameState, session.GameConfig)), nil
}

func (c *Client) handleSetHeading(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	heading, _ := args["heading"].(string)

	var result service.HeadingResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/heading", sessionID),
		map[string]string{"heading": heading}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.Accepted {
		return mcp.NewToolResultText(fmt.Sprintf("Heading set to %s for the next tick", result.Heading)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Heading rejected: %s\nCommitted heading stays %s",
		result.Message, result.Heading)), nil
}

func (c *Client) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	heading, _ := args["heading"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"reset": reset,
	}
	if heading != "" {
		body["heading"] = heading
	}

	var outcome service.TickOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/tick", sessionID), body, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session, err := c.fetchSession(sessionID)
	if err != nil {
		return mcp.NewToolResultText(formatTickResult(outcome.Result)), nil
	}

	response := formatTickResult(outcome.Result)
	if outcome.FoodHint != "" {
		response += "Hint: " + outcome.FoodHint + "\n"
	}
	response += "\n" + formatGameState(session.GameState, session.GameConfig)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	headingsRaw, _ := args["headings"].([]interface{})
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	headings := make([]string, 0, len(headingsRaw))
	for _, h := range headingsRaw {
		if heading, ok := h.(string); ok {
			headings = append(headings, heading)
		}
	}

	body := map[string]interface{}{
		"headings": headings,
		"reset":    reset,
	}

	var result service.BulkTickResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-tick", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Executed %d/%d ticks\n", result.TicksExecuted, result.RequestedTicks))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Request truncated to the %d-tick limit\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
	}
	b.WriteString(fmt.Sprintf("Head: (%d,%d) -> (%d,%d), score delta %+d\n",
		result.StartHead.X, result.StartHead.Y, result.EndHead.X, result.EndHead.Y, result.ScoreDelta))

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			if event.Type == "tick" {
				continue // per-step noise; the summary covers it
			}
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	if result.FoodHint != "" {
		b.WriteString("\nHint: " + result.FoodHint + "\n")
	}

	if session, err := c.fetchSession(sessionID); err == nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(session.GameState, session.GameConfig))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session, err := c.fetchSession(sessionID)
	if err != nil {
		return mcp.NewToolResultText(response.Message), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message,
		formatGameState(session.GameState, session.GameConfig))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTickHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("- %s (id: %s)\n  %s\n  Grid: %dx%d cells of %dpx, boundary: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.GridColumns, config.GridRows, config.CellSize, config.BoundaryMode)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleHighScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	limit := 10
	if l, ok := args["limit"].(float64); ok && int(l) > 0 {
		limit = int(l)
	}

	var response struct {
		Count  int                  `json:"count"`
		Scores []service.ScoreEntry `json:"scores"`
	}
	err := c.apiCall("GET", fmt.Sprintf("/api/scores?limit=%d", limit), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No finished sessions on the scoreboard yet."), nil
	}

	result := fmt.Sprintf("High Scores (top %d):\n\n", response.Count)
	for i, entry := range response.Scores {
		result += fmt.Sprintf("%d. score %d, length %d, %d ticks (%s, config %s, session %s)\n",
			i+1, entry.Score, entry.Length, entry.Ticks, entry.Cause, entry.ConfigName, entry.SessionID)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Grid Snake Game - Complete Instructions

GAME OBJECTIVE:
Steer the snake to eat food and grow as long as possible. Score equals the
number of food items eaten (body length minus initial length).

GAME MECHANICS:
- The simulation is turn-synchronous: nothing happens until a tick.
- Each tick moves the head one cell in the committed heading. The tail
  follows unless the head lands exactly on the food, which grows the snake
  by one segment and scores a point.
- Heading changes take effect on the NEXT tick. Requesting the exact
  opposite of the committed heading is rejected (the snake cannot reverse
  into its own neck). Requesting the current heading or a perpendicular
  heading is accepted; the last accepted request before a tick wins.
- Exactly one food item is on the board at any time once play begins. A new
  one appears on a random free cell whenever the previous one is eaten.

BOARD LEGEND (ASCII rendering):
- @  snake head
- o  snake body
- *  food
- .  empty cell

BOUNDARY MODES (per board config):
- rail: leaving the board slides the snake along the wall, turning it
  toward the side with more room. One row (for side exits) and one column
  (for top/bottom exits) form a GATE: exiting on the gate line ends the
  game. Watch for the "redirected" event to know the rail turned you.
- wrap: the board is a torus; leaving one edge enters the opposite edge.
- wall: leaving the board ends the game immediately.

GAME OVER CONDITIONS:
- self_collision: the head entered a cell occupied by the body (the cell
  the tail is vacating this tick does NOT count).
- gate: exited the board on the gate line (rail mode).
- wall: left the board (wall mode).
After game over the session is frozen; further ticks do nothing. Use
reset_game to play again. Finished results land on the high score board.

STRATEGY NOTES FOR AGENTS:
- Use game_state before planning: the ASCII board plus the food hint tell
  you exactly where to go.
- Plan with bulk_tick: compute the full heading sequence to the food, then
  execute it in one call. Empty strings keep the committed heading.
- Never emit two perpendicular turns in the same tick; each entry in a
  bulk_tick is one tick.
- Mind your own body: after eating, the tail does not move for that tick,
  so tight turns right after food can bite the neck.
- In rail mode, the redirect can save you at walls, but the gate line is
  lethal; learn its position from the board config (gate_row, gate_col).

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously.
- Each session has a unique 4-character ID.
- Sessions maintain independent state and configuration.`

	return mcp.NewToolResultText(instructions), nil
}

// fetchSession grabs the full session info (state plus config) for rendering
func (c *Client) fetchSession(sessionID string) (*service.SessionInfo, error) {
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Formatting helpers

func formatGameState(state *engine.GameState, config *engine.GameConfig) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	head := state.Head()

	result.WriteString(fmt.Sprintf("Head: (%d,%d) | Heading: %s | Length: %d | Score: %d | Ticks: %d\n",
		head.X, head.Y, state.Heading, len(state.Body), state.Score(), state.Ticks))

	if config != nil {
		result.WriteString(formatBoard(state, config))
	}

	if state.GameOver {
		result.WriteString(fmt.Sprintf("\nGAME OVER (%s)", state.Cause))
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

// formatBoard renders the board as ASCII, one character per cell
func formatBoard(state *engine.GameState, config *engine.GameConfig) string {
	cols := config.GridColumns()
	rows := config.GridRows()

	grid := make([][]byte, rows)
	for y := range grid {
		grid[y] = bytes.Repeat([]byte{'.'}, cols)
	}

	plot := func(p engine.Position, ch byte) {
		x := p.X / config.CellSize
		y := p.Y / config.CellSize
		if x >= 0 && x < cols && y >= 0 && y < rows {
			grid[y][x] = ch
		}
	}

	for _, seg := range state.Body {
		plot(seg, 'o')
	}
	plot(state.Head(), '@')
	if state.Food != nil {
		plot(*state.Food, '*')
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, row := range grid {
		b.Write(row)
		b.WriteString("\n")
	}
	return b.String()
}

func formatTickResult(tick *engine.TickResult) string {
	if tick == nil {
		return "No tick result available\n"
	}

	var b strings.Builder
	status := "alive"
	if !tick.Alive {
		status = "GAME OVER (" + tick.Cause + ")"
	}
	b.WriteString(fmt.Sprintf("Tick %d: moved %s, score %d, %s\n",
		tick.TickNumber, tick.Heading, tick.Score, status))

	if tick.Ate {
		b.WriteString("Food eaten this tick!\n")
	}
	if tick.Redirected {
		b.WriteString(fmt.Sprintf("Boundary rail redirected the heading to %s\n", tick.Heading))
	}

	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Tick History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalTicks)

	for _, tick := range history.Ticks {
		flags := ""
		if tick.Ate {
			flags += " ate"
		}
		if tick.Redirected {
			flags += " redirected"
		}
		if !tick.Alive {
			flags += " terminal"
		}
		result += fmt.Sprintf("%d. %s head=(%d,%d)%s\n",
			tick.TickNumber, tick.Heading, tick.Head.X, tick.Head.Y, flags)
	}

	return result
}
